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

package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kuralverse/kuralsearch/core"
)

// datasetRow is one verse as it appears in dataset exports. Published
// Thirukkural datasets use Tamil-derived column names (Kural, Adhigaram,
// Paal); canonical camelCase names are accepted too.
type datasetRow map[string]json.RawMessage

// LoadDataset parses a JSON verse dataset. The top level may be a bare
// array or an object with a "kural" or "verses" array. Rows without a
// positive number or without any text are skipped.
func LoadDataset(r io.Reader) ([]*core.Verse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rows, err := datasetRows(data)
	if err != nil {
		return nil, err
	}

	verses := make([]*core.Verse, 0, len(rows))
	for _, row := range rows {
		verse := rowToVerse(row)
		if verse == nil {
			continue
		}
		verses = append(verses, verse)
	}

	if len(verses) == 0 {
		return nil, ErrEmptyDataset
	}
	return verses, nil
}

func datasetRows(data []byte) ([]datasetRow, error) {
	var rows []datasetRow
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyDataset, err)
	}
	for _, key := range []string{"kural", "verses"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmptyDataset, err)
		}
		return rows, nil
	}
	return nil, ErrEmptyDataset
}

func rowToVerse(row datasetRow) *core.Verse {
	number := row.intField("number", "ID", "id")
	if number <= 0 {
		return nil
	}

	tamil := row.stringField("tamil", "Kural", "Line1")
	english := row.stringField("english", "Couplet", "Translation")
	if tamil == "" && english == "" {
		return nil
	}

	verse := &core.Verse{
		Number:      number,
		Chapter:     row.intField("chapter", "Adhigaram_ID", "chapterNumber"),
		ChapterName: row.stringField("chapterName", "Adhigaram", "chapter_name"),
		SectionName: row.stringField("sectionName", "Paal", "section"),
		Tamil:       tamil,
		English:     english,
	}

	if explanation := row.stringField("englishExplanation", "Explanation"); explanation != "" {
		verse.EnglishExplanation = &explanation
	}
	if explanation := row.stringField("tamilExplanation", "Vilakam", "M_Varadharajanar"); explanation != "" {
		verse.TamilExplanation = &explanation
	}

	return verse
}

// stringField returns the first non-empty string value among the keys.
func (row datasetRow) stringField(keys ...string) string {
	for _, key := range keys {
		raw, ok := row[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

// intField returns the first parseable integer among the keys, accepting
// both numbers and numeric strings.
func (row datasetRow) intField(keys ...string) int {
	for _, key := range keys {
		raw, ok := row[key]
		if !ok {
			continue
		}
		var number float64
		if err := json.Unmarshal(raw, &number); err == nil {
			return int(number)
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if parsed, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
				return parsed
			}
		}
	}
	return 0
}
