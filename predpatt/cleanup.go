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

package predpatt

import (
	"sort"

	"github.com/lingua-ud/predpatt/predpatt/rules"
	"github.com/lingua-ud/predpatt/ud"
)

// cleanup is the final pipeline phase (spec.md §4.3 step 11, first
// half): re-sort every instance and its arguments by position and
// strip trivial boundary tokens from both. Broken-predicate removal is
// a separate pass (removeBrokenPredicates) so callers inspecting
// e.Instances mid-cleanup always see a fully re-sorted, stripped set.
func (e *Engine) cleanup(instances []*Predicate) {
	sortPredicatesByPosition(instances)
	for _, p := range instances {
		SortArgumentsByPosition(p.Arguments)
		e.stripTrivialPredicate(p)
		for _, a := range p.Arguments {
			e.stripTrivialArgument(a)
		}
	}
	e.Instances = instances
}

// removeBrokenPredicates drops any instance IsBroken reports true for
// (spec.md §4.3 step 11, second half / §4.11).
func (e *Engine) removeBrokenPredicates() {
	kept := e.Instances[:0:0]
	for _, p := range e.Instances {
		if !p.IsBroken() {
			kept = append(kept, p)
		}
	}
	e.Instances = kept
}

func (e *Engine) stripTrivialPredicate(p *Predicate) {
	stripped, changed := e.stripTrivial(p.Tokens)
	p.Tokens = stripped
	if changed {
		p.Rules = append(p.Rules, rules.U())
	}
}

func (e *Engine) stripTrivialArgument(a *Argument) {
	stripped, changed := e.stripTrivial(a.Tokens)
	a.Tokens = stripped
	if changed {
		a.Rules = append(a.Rules, rules.U())
	}
}

// stripTrivial implements spec.md §4.10. It sorts a copy of tokens by
// position, trims leading/trailing tokens whose governor-relation is
// trivial (mark/cc/punct), with one exception at the front - a mark
// immediately followed by a VERB is kept, since that pattern marks a
// clausal argument head rather than a discardable complementizer - and
// then collapses any run of consecutive punct tokens down to the first
// token of the run.
func (e *Engine) stripTrivial(tokens []*Token) ([]*Token, bool) {
	if e.Config.BigArgs || !e.Config.Strip || len(tokens) == 0 {
		return tokens, false
	}
	s := e.Schema
	sorted := append([]*Token(nil), tokens...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	orig := len(sorted)

	for len(sorted) > 0 && s.TRIVIALS.Contains(sorted[0].GovRel) {
		if sorted[0].GovRel == s.Mark && len(sorted) > 1 && sorted[1].Tag == ud.VERB {
			break
		}
		sorted = sorted[1:]
	}
	for len(sorted) > 0 && s.TRIVIALS.Contains(sorted[len(sorted)-1].GovRel) {
		sorted = sorted[:len(sorted)-1]
	}

	collapsed := sorted[:0:0]
	for i, t := range sorted {
		if t.GovRel == s.Punct && i > 0 && sorted[i-1].GovRel == s.Punct {
			continue
		}
		collapsed = append(collapsed, t)
	}

	return collapsed, len(collapsed) != orig
}
