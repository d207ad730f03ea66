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

import "github.com/lingua-ud/predpatt/predpatt/rules"

// predPhraseExtract assembles a predicate's token phrase (spec.md §4.7,
// predicate phrase routine). It must be called exactly once per
// predicate, after that predicate's tokens field is still empty.
func (e *Engine) predPhraseExtract(p *Predicate) error {
	if len(p.Tokens) != 0 {
		return &InvariantViolationError{Reason: "predicate phrase already assembled"}
	}
	if p.Type == Possessive {
		p.Tokens = []*Token{p.Root}
		return nil
	}

	p.Tokens = e.subtree(p.Root, e.predPhraseFilter(p))

	if e.Config.Simple {
		return nil
	}
	adjLike := e.Schema.ADJLikeMods.Contains(p.Root.GovRel)
	predGov := e.Parse.Governor(p.Root.Position)
	for _, arg := range p.Arguments {
		if adjLike && predGov == arg.Root {
			continue
		}
		for _, edge := range e.Parse.Dependents(arg.Root.Position) {
			if edge.Relation != e.Schema.Case {
				continue
			}
			caseTok := e.Parse.Token(edge.DepPosition)
			arg.Rules = append(arg.Rules, rules.MoveCaseTokenToPred(caseTok.Position))
			p.Tokens = append(p.Tokens, e.subtree(caseTok, nil)...)
			p.Rules = append(p.Rules, rules.N6(caseTok.Position))
		}
	}
	return nil
}

func (e *Engine) isArgumentRoot(p *Predicate, pos int) bool {
	for _, a := range p.Arguments {
		if a.Root.Position == pos {
			return true
		}
	}
	return false
}

// predPhraseFilter builds the subtree-traversal filter for a
// predicate's phrase, recording a rule for every edge decision (both
// inclusion and exclusion) as required by spec.md's rule-name
// stability property (§8.2): absence of a rule is as load-bearing as
// its presence, so every visited edge gets exactly one verdict.
func (e *Engine) predPhraseFilter(p *Predicate) func(Edge) bool {
	s := e.Schema
	return func(edge Edge) bool {
		if e.isArgumentRoot(p, edge.DepPosition) {
			p.Rules = append(p.Rules, rules.N2())
			return false
		}
		if other, ok := e.eventMap[edge.DepPosition]; ok && other != p && edge.Relation != s.Amod {
			p.Rules = append(p.Rules, rules.N3())
			return false
		}
		if s.PredDepsToDrop.Contains(edge.Relation) {
			p.Rules = append(p.Rules, rules.N4())
			return false
		}
		govTok := e.Parse.Token(edge.GovPosition)
		if (govTok == p.Root || govTok.GovRel == s.Xcomp) && (edge.Relation == s.Cc || edge.Relation == s.Conj) {
			p.Rules = append(p.Rules, rules.N5())
			return false
		}
		if e.Config.Simple {
			if edge.Relation == s.Advmod {
				p.Rules = append(p.Rules, rules.Q())
				return false
			}
			if edge.Relation == s.Aux {
				p.Rules = append(p.Rules, rules.R())
				return false
			}
		}
		p.Rules = append(p.Rules, rules.N1())
		return true
	}
}

// argPhraseExtract assembles an argument's token phrase (spec.md §4.7,
// argument phrase routine).
func (e *Engine) argPhraseExtract(p *Predicate, arg *Argument) {
	arg.Tokens = e.subtree(arg.Root, e.argPhraseFilter(p, arg))
}

func (e *Engine) argPhraseFilter(p *Predicate, arg *Argument) func(Edge) bool {
	s := e.Schema
	predGov := e.Parse.Governor(p.Root.Position)
	return func(edge Edge) bool {
		if e.Config.BigArgs {
			return true
		}
		depTok := e.Parse.Token(edge.DepPosition)
		if p.HasToken(depTok) {
			arg.Rules = append(arg.Rules, rules.PredicateHas())
			return false
		}
		govTok := e.Parse.Token(edge.GovPosition)
		if govTok == arg.Root && edge.Relation == s.Case {
			return false // predicate phrase assembly already claims case markers
		}
		if e.Config.ResolveAppos && edge.Relation == s.Appos {
			arg.Rules = append(arg.Rules, rules.DropAppos())
			return false
		}
		if edge.Relation == s.Dep {
			arg.Rules = append(arg.Rules, rules.DropUnknown())
			return false
		}
		if arg.Root == predGov && govTok == arg.Root && s.SpecialArgDepsToDrop.Contains(edge.Relation) {
			arg.Rules = append(arg.Rules, rules.SpecialArgDropDirectDep())
			return false
		}
		if e.Config.ResolveConj && govTok == arg.Root {
			if edge.Relation == s.Cc || edge.Relation == s.CcPreconj {
				arg.Rules = append(arg.Rules, rules.DropCc())
				return false
			}
			if edge.Relation == s.Conj {
				arg.Rules = append(arg.Rules, rules.DropConj())
				return false
			}
		}
		arg.Rules = append(arg.Rules, rules.CleanArgToken())
		return true
	}
}

// simpleArg implements _simple_arg (spec.md §4.3 step 7 / "simple"
// mode filtering): whether an argument survives when Config.Simple is
// on.
func (e *Engine) simpleArg(p *Predicate, arg *Argument) bool {
	if p.Type == Possessive {
		return true
	}
	if e.Schema.ADJLikeMods.Contains(p.Root.GovRel) {
		if gov := e.Parse.Governor(p.Root.Position); gov != nil && gov == arg.Root {
			return true
		}
	}
	if e.Schema.SUBJ.Contains(arg.Root.GovRel) {
		return true
	}
	if e.Schema.NMODS.Contains(arg.Root.GovRel) {
		arg.Rules = append(arg.Rules, rules.P1())
		return false
	}
	gov := e.Parse.Governor(arg.Root.Position)
	if gov == nil {
		return false
	}
	return gov == p.Root || gov.GovRel == e.Schema.Xcomp
}
