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
	"github.com/lingua-ud/predpatt/predpatt/rules"
	"github.com/lingua-ud/predpatt/ud"
)

// govLooksLikePredicate implements the helper from spec.md §4.2: a
// governor looks like a predicate if it is a VERB and the edge it heads
// is a nominal-modifier relation (nmod, nmod:npmod, obl, obl:npmod), or
// if the edge itself carries one of the core-argument/clausal relations.
func govLooksLikePredicate(s *ud.Schema, e Edge, gov *Token) bool {
	if gov.Tag == ud.VERB && (e.Relation == s.Nmod || e.Relation == s.NmodNpmod ||
		e.Relation == s.Obl || e.Relation == s.OblNpmod) {
		return true
	}
	switch e.Relation {
	case s.Nsubj, s.Nsubjpass, s.Csubj, s.Csubjpass, s.Dobj, s.Iobj, s.Ccomp, s.Xcomp, s.Advcl:
		return true
	}
	return false
}

// qualifiedConjoinedPredicate implements qualified_conjoined_predicate:
// the conjunct must be a word, and if the governing predicate's root is
// a VERB the conjunct must also be a VERB (coordinated predicates of
// mixed POS, e.g. a verb conjoined with an adjective, are not nominated
// this way).
func qualifiedConjoinedPredicate(gov, dep *Token) bool {
	if !dep.IsWord() {
		return false
	}
	if gov.Tag == ud.VERB {
		return dep.Tag == ud.VERB
	}
	return true
}

// identifyPredicateRoots implements spec.md §4.4: a single left-to-right
// pass over all edges nominating predicate roots, followed by a
// breadth-first expansion over conj edges from every already-identified
// predicate.
func (e *Engine) identifyPredicateRoots() []*Predicate {
	s := e.Schema
	roots := make(map[int]*Predicate)
	var order []int

	nominate := func(pos int, typ PredicateType, rule rules.Rule) {
		if p, ok := roots[pos]; ok {
			p.Rules = append(p.Rules, rule)
			return
		}
		p := NewPredicate(e.Parse.Token(pos), typ, rule)
		roots[pos] = p
		order = append(order, pos)
	}

	for pos := range e.Parse.Tokens {
		for _, edge := range e.Parse.Dependents(pos) {
			dep := e.Parse.Token(edge.DepPosition)
			gov := e.Parse.Token(edge.GovPosition)
			if !dep.IsWord() {
				continue
			}

			if e.Config.ResolveAppos && edge.Relation == s.Appos {
				nominate(dep.Position, Appositive, rules.D())
			}
			if e.Config.ResolvePoss && edge.Relation == s.NmodPoss {
				nominate(dep.Position, Possessive, rules.V())
			}
			if e.Config.ResolveAmod && edge.Relation == s.Amod && dep.Tag == ud.ADJ && gov.Tag != ud.ADJ {
				nominate(dep.Position, AdjectivalModifier, rules.E())
			}

			if gov.GovRel == s.Dep {
				// Generic dependency on the governor usually marks a
				// parse error; skip the remaining core rules for this
				// edge but not the special-type nominations above.
				continue
			}

			switch edge.Relation {
			case s.Ccomp, s.Csubj, s.Csubjpass:
				nominate(dep.Position, Normal, rules.A1())
			}
			if e.Config.ResolveRelcl && (edge.Relation == s.Advcl || edge.Relation == s.Acl || edge.Relation == s.AclRelcl) {
				nominate(dep.Position, Normal, rules.B())
			}
			if edge.Relation == s.Xcomp {
				nominate(dep.Position, Normal, rules.A2())
			}

			if govLooksLikePredicate(s, edge, gov) {
				if edge.Relation == s.Ccomp && e.Parse.ArgumentLike(gov) {
					continue
				}
				ec := rules.EdgeContext{Relation: edge.Relation, GovernorPos: edge.GovPosition, DependentPos: edge.DepPosition}
				if gov.GovRel == s.Xcomp {
					govGov := e.Parse.Governor(gov.Position)
					if govGov == nil || !e.Parse.HardToFindArguments(govGov) {
						nominate(gov.Position, Normal, rules.C(ec))
					}
				} else if !e.Parse.HardToFindArguments(gov) {
					nominate(gov.Position, Normal, rules.C(ec))
				}
			}
		}
	}

	// Conjoined predicates: breadth-first from each already-identified
	// predicate over its conj dependents.
	queue := append([]int(nil), order...)
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		gov := e.Parse.Token(pos)
		for _, edge := range e.Parse.Dependents(pos) {
			if edge.Relation != s.Conj {
				continue
			}
			dep := e.Parse.Token(edge.DepPosition)
			if _, already := roots[dep.Position]; already {
				continue
			}
			if qualifiedConjoinedPredicate(gov, dep) {
				nominate(dep.Position, Normal, rules.F())
				queue = append(queue, dep.Position)
			}
		}
	}

	out := make([]*Predicate, 0, len(order))
	for _, pos := range order {
		out = append(out, roots[pos])
	}
	sortPredicatesByPosition(out)
	return out
}
