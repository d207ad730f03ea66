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

// argumentExtract implements spec.md §4.5: per predicate, collects
// argument roots without assembling their token phrases yet.
func (e *Engine) argumentExtract(p *Predicate) []*Argument {
	s := e.Schema
	var args []*Argument

	for _, edge := range e.Parse.Dependents(p.Root.Position) {
		switch edge.Relation {
		case s.Nsubj, s.Nsubjpass, s.Dobj, s.Iobj:
			ec := rules.EdgeContext{Relation: edge.Relation, GovernorPos: edge.GovPosition, DependentPos: edge.DepPosition}
			args = append(args, NewArgument(e.Parse.Token(edge.DepPosition), rules.G1(ec)))
			continue
		}
		if (ud.HasRelationPrefix(edge.Relation, "nmod") || ud.HasRelationPrefix(edge.Relation, "obl")) && p.Type != AdjectivalModifier {
			args = append(args, NewArgument(e.Parse.Token(edge.DepPosition), rules.H1()))
			continue
		}
		if edge.Relation == s.Ccomp || edge.Relation == s.Csubj || edge.Relation == s.Csubjpass ||
			(e.Config.Cut && edge.Relation == s.Xcomp) {
			args = append(args, NewArgument(e.Parse.Token(edge.DepPosition), rules.K()))
		}
	}

	for _, edge := range e.Parse.Dependents(p.Root.Position) {
		if edge.Relation != s.Advmod {
			continue
		}
		advmodTok := e.Parse.Token(edge.DepPosition)
		for _, inner := range e.Parse.Dependents(advmodTok.Position) {
			if ud.HasRelationPrefix(inner.Relation, "nmod") || inner.Relation == s.Obl {
				args = append(args, NewArgument(e.Parse.Token(inner.DepPosition), rules.H2()))
			}
		}
	}

	switch p.Type {
	case AdjectivalModifier:
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			panic(&InvariantViolationError{Reason: "AdjectivalModifier predicate root has no governor"})
		}
		args = append(args, NewArgument(gov, rules.I()))
	case Appositive:
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			panic(&InvariantViolationError{Reason: "Appositive predicate root has no governor"})
		}
		args = append(args, NewArgument(gov, rules.J()))
	case Possessive:
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			panic(&InvariantViolationError{Reason: "Possessive predicate root has no governor"})
		}
		args = append(args, NewArgument(gov, rules.W1()))
		args = append(args, NewArgument(p.Root, rules.W2()))
	}

	return args
}
