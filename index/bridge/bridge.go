/*
Copyright 2025 The Kuralverse Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/kuralverse/kuralsearch/index"
)

const defaultTimeout = 30 * time.Second

// Index queries an external similarity-search process. The process receives
// the query vector as JSON and the neighbor count as arguments, and prints a
// JSON result array on stdout, typically surrounded by its own log output.
type Index struct {
	command string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

var _ index.Index = (*Index)(nil)

// Option configures the bridge index.
type Option func(*Index)

// WithArgs sets fixed arguments placed before the query arguments.
func WithArgs(args ...string) Option {
	return func(idx *Index) { idx.args = args }
}

// WithTimeout bounds each subprocess invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(idx *Index) { idx.timeout = timeout }
}

// NewIndex creates a bridge index that runs the given command per query.
func NewIndex(command string, opts ...Option) *Index {
	idx := &Index{
		command: command,
		timeout: defaultTimeout,
		logger:  slog.Default().With("component", "bridge-index"),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Query runs the external process and decodes its output into neighbors.
func (idx *Index) Query(ctx context.Context, vector []float32, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return []index.Neighbor{}, nil
	}

	encoded, err := json.Marshal(vector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, idx.timeout)
	defer cancel()

	args := append(append([]string{}, idx.args...), string(encoded), strconv.Itoa(k))
	cmd := exec.CommandContext(ctx, idx.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		idx.logger.Warn("bridge process failed",
			"command", idx.command, "error", err, "stderr", stderr.String())
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	results, err := index.DecodeResults(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	neighbors := index.Normalize(results, idx.logger)
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}
