package retrieval

import (
	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, k int)
	AfterEncoding(vector []float32, err error)
	AfterIndexQuery(neighbors []index.Neighbor, err error)
	FallbackUsed(numbers []int)
	AfterHydration(verses []*core.Verse)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)                          {}
func (n *noopMonitor) AfterEncoding(_ []float32, _ error)             {}
func (n *noopMonitor) AfterIndexQuery(_ []index.Neighbor, _ error)    {}
func (n *noopMonitor) FallbackUsed(_ []int)                           {}
func (n *noopMonitor) AfterHydration(_ []*core.Verse)                 {}
func (n *noopMonitor) Finish(_ []core.SearchResult)                   {}
