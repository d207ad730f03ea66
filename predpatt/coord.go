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
)

// expandCoord implements spec.md §4.9. With coordination resolution
// off (or for an AdjectivalModifier predicate, which only ever makes
// sense with its single borrowed governor argument), the predicate is
// emitted as-is after dropping any argument whose phrase ended up
// empty; an AdjectivalModifier predicate left with no argument is not
// emitted at all. With coordination on, each argument's coordinate set (itself
// plus its conjuncts) is enumerated and the cartesian product across
// all arguments is emitted as independent predicate instances.
func (e *Engine) expandCoord(p *Predicate) []*Predicate {
	if !e.Config.ResolveConj || p.Type == AdjectivalModifier {
		kept := p.Arguments[:0:0]
		for _, a := range p.Arguments {
			if len(a.Tokens) > 0 {
				kept = append(kept, a)
			}
		}
		p.Arguments = kept
		if p.Type == AdjectivalModifier && len(p.Arguments) == 0 {
			return nil
		}
		return []*Predicate{p}
	}

	e.stripTrivialPredicate(p)
	for _, arg := range p.Arguments {
		if !arg.IsBorrowed {
			e.stripTrivialArgument(arg)
		}
	}

	if len(p.Arguments) == 0 {
		return []*Predicate{p}
	}

	sets := make([][]*Argument, len(p.Arguments))
	for i, arg := range p.Arguments {
		sets[i] = e.coordinateSet(p, arg)
	}

	var instances []*Predicate
	var build func(i int, cur *Predicate)
	build = func(i int, cur *Predicate) {
		if i == len(sets) {
			instances = append(instances, cur)
			return
		}
		for _, alt := range sets[i] {
			next := cur.Copy()
			next.Arguments[i] = alt
			build(i+1, next)
		}
	}
	build(0, p)
	return instances
}

// coordinateSet enumerates arg's coordinate set: itself plus every
// outgoing conj dependent of its root, sorted by position. The
// expansion is skipped entirely - yielding just [arg] - when the
// argument root's governor-relation is ccomp, csubj, or amod, matching
// the net effect of the reference engine's two separate call sites for
// this exclusion.
func (e *Engine) coordinateSet(p *Predicate, arg *Argument) []*Argument {
	rel := arg.Root.GovRel
	if rel == e.Schema.Ccomp || rel == e.Schema.Csubj || rel == e.Schema.Amod {
		return []*Argument{arg}
	}

	set := []*Argument{arg}
	for _, edge := range e.Parse.Dependents(arg.Root.Position) {
		if edge.Relation != e.Schema.Conj {
			continue
		}
		conjTok := e.Parse.Token(edge.DepPosition)
		conjArg := NewArgument(conjTok, rules.M())
		e.argPhraseExtract(p, conjArg)
		set = append(set, conjArg)
	}
	sort.SliceStable(set, func(i, j int) bool { return set[i].Root.Position < set[j].Root.Position })
	return set
}
