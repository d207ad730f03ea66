// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rulestats

import (
	"sort"

	"github.com/lingua-ud/predpatt/predpatt"
	"github.com/lingua-ud/predpatt/predpatt/rules"
)

// Count is one rule's aggregate: how many times it occurred across the
// provenance lists of all added predicates and arguments (a rule listed
// twice in one list counts twice), and its rank once sorted.
type Count struct {
	RuleName string
	Category rules.Category
	Freq     int
	Rank     int
}

// Calculator accumulates rule-firing counts across any number of
// extraction results, the way scoll.Calculator accumulates collocation
// frequency across lookups - Add is called once per sentence's worth of
// instances, and the totals are read out on demand via Report.
type Calculator struct {
	counts   map[string]int
	category map[string]rules.Category
}

// New creates an empty Calculator.
func New() *Calculator {
	return &Calculator{
		counts:   make(map[string]int),
		category: make(map[string]rules.Category),
	}
}

// Add folds the rules attached to every predicate and argument in
// instances into the running totals.
func (c *Calculator) Add(instances []*predpatt.Predicate) {
	for _, p := range instances {
		c.addRules(p.Rules)
		for _, arg := range p.Arguments {
			c.addRules(arg.Rules)
		}
	}
}

func (c *Calculator) addRules(rs []rules.Rule) {
	for _, r := range rs {
		c.counts[r.Name()]++
		c.category[r.Name()] = r.Category()
	}
}

// Report returns the accumulated counts as a ranked slice, filtered and
// sorted by RankByFrequency according to options.
func (c *Calculator) Report(options ...func(*Options)) []Count {
	opts := NewOptions(options...)
	out := make([]Count, 0, len(c.counts))
	for name, freq := range c.counts {
		cat := c.category[name]
		if !presetAllows(opts.Preset, cat) {
			continue
		}
		if freq < opts.MinCount {
			continue
		}
		out = append(out, Count{RuleName: name, Category: cat, Freq: freq})
	}
	RankByFrequency(out)
	return out
}

func presetAllows(p Preset, cat rules.Category) bool {
	switch p {
	case PresetResolutionOnly:
		return cat == rules.CategoryResolution || cat == rules.CategoryConjunction
	default:
		return true
	}
}

// RankByFrequency sorts counts by descending frequency, breaking ties
// by rule name for determinism, and assigns each entry's 1-based Rank -
// the deterministic multi-key sort-and-rank idea storage.SortByRRF uses
// for collocations, carried over without the probabilistic fusion score
// since rule firing counts are exact, not estimated from multiple
// measures.
func RankByFrequency(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Freq != counts[j].Freq {
			return counts[i].Freq > counts[j].Freq
		}
		return counts[i].RuleName < counts[j].RuleName
	})
	for i := range counts {
		counts[i].Rank = i + 1
	}
}
