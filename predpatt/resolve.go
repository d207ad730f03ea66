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

// resolveArguments runs the seven argument-resolution sub-passes of
// spec.md §4.6 in fixed order over events, returning the (possibly
// shorter, since xcomp merge removes predicates) surviving list.
func (e *Engine) resolveArguments(events []*Predicate) []*Predicate {
	events = e.resolveXcompMerge(events)
	e.resolveRelcl(events)
	e.resolveConjBorrow(events)
	e.resolveAdvclBorrow(events)
	if e.Config.Cut {
		e.resolveCutXcomp(events)
	}
	e.resolveAdvclFromFor(events)
	e.resolveGeneralSubjFallback(events)
	return events
}

// pass 1: xcomp merge.
func (e *Engine) resolveXcompMerge(events []*Predicate) []*Predicate {
	if e.Config.Cut {
		return events
	}
	removed := make(map[int]bool)
	for _, p := range events {
		if p.Root.GovRel != e.Schema.Xcomp {
			continue
		}
		g := e.getTopXcomp(p)
		if g == nil {
			continue
		}
		for _, arg := range p.Arguments {
			arg.Rules = append(arg.Rules, rules.L())
		}
		g.Arguments = append(g.Arguments, p.Arguments...)
		removed[p.Position()] = true
		delete(e.eventMap, p.Position())
	}
	if len(removed) == 0 {
		return events
	}
	out := make([]*Predicate, 0, len(events))
	for _, p := range events {
		if !removed[p.Position()] {
			out = append(out, p)
		}
	}
	return out
}

// pass 2: relative-clause resolution.
func (e *Engine) resolveRelcl(events []*Predicate) {
	if !(e.Config.ResolveRelcl && e.Config.BorrowArgForRelcl) {
		return
	}
	for _, p := range events {
		if !ud.HasRelationPrefix(p.Root.GovRel, "acl") {
			continue
		}
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			continue
		}
		p.Arguments = append(p.Arguments, NewArgument(gov, rules.ArgResolveRelcl()))
		p.Rules = append(p.Rules, rules.PredResolveRelcl())
	}
}

// pass 3: conjunct subject/object borrowing.
func (e *Engine) resolveConjBorrow(events []*Predicate) {
	for _, p := range events {
		if p.Root.GovRel != e.Schema.Conj {
			continue
		}
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			continue
		}
		g, ok := e.eventMap[gov.Position]
		if !ok {
			continue
		}
		if !p.HasSubj(e.subjObj()) {
			if subj := g.Subj(e.subjObj()); subj != nil {
				p.Arguments = append(p.Arguments, withRule(subj.Reference(), rules.BorrowSubj(e.fromContext(g))))
			} else if topG := e.getTopXcomp(g); topG != nil {
				if subj2 := topG.Subj(e.subjObj()); subj2 != nil {
					p.Arguments = append(p.Arguments, withRule(subj2.Reference(), rules.BorrowSubj(e.fromContext(topG))))
				}
			}
		}
		if len(p.Arguments) == 0 {
			if obj := g.Obj(e.subjObj()); obj != nil {
				p.Arguments = append(p.Arguments, withRule(obj.Reference(), rules.BorrowObj(e.fromContext(g))))
			}
		}
	}
}

// pass 4: advcl subject borrowing.
func (e *Engine) resolveAdvclBorrow(events []*Predicate) {
	for _, p := range events {
		if p.Root.GovRel != e.Schema.Advcl {
			continue
		}
		if p.HasSubj(e.subjObj()) {
			continue
		}
		if hasFromForMark(e.Parse, p) {
			continue
		}
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			continue
		}
		g, ok := e.eventMap[gov.Position]
		if !ok {
			continue
		}
		if subj := g.Subj(e.subjObj()); subj != nil {
			p.Arguments = append(p.Arguments, withRule(subj.Reference(), rules.BorrowSubj(e.fromContext(g))))
		}
	}
}

// pass 5: cut-mode xcomp.
func (e *Engine) resolveCutXcomp(events []*Predicate) {
	for _, p := range events {
		if p.Root.GovRel != e.Schema.Xcomp {
			continue
		}
		for _, g := range e.parents(p) {
			if obj := g.Obj(e.subjObj()); obj != nil {
				p.Arguments = append(p.Arguments, withRule(obj.Reference(), rules.CutBorrowObj(e.fromContext(g))))
				break
			}
			if subj := g.Subj(e.subjObj()); subj != nil {
				p.Arguments = append(p.Arguments, withRule(subj.Reference(), rules.CutBorrowSubj(e.fromContext(g))))
				break
			}
			if e.Schema.ADJLikeMods.Contains(g.Root.GovRel) {
				gGov := e.Parse.Governor(g.Root.Position)
				if gGov != nil {
					p.Arguments = append(p.Arguments, withRule(NewArgument(gGov), rules.CutBorrowOther(e.fromContext(g))))
				}
				break
			}
		}
	}
}

// pass 6: special advcl (from/for) object borrowing, mislabeled as
// BorrowSubj for output compatibility (spec.md §9 Open Question).
func (e *Engine) resolveAdvclFromFor(events []*Predicate) {
	for _, p := range events {
		if p.Root.GovRel != e.Schema.Advcl {
			continue
		}
		if p.HasSubj(e.subjObj()) {
			continue
		}
		if !hasFromForMark(e.Parse, p) {
			continue
		}
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			continue
		}
		g, ok := e.eventMap[gov.Position]
		if !ok {
			continue
		}
		if obj := g.Obj(e.subjObj()); obj != nil {
			p.Arguments = append(p.Arguments, withRule(obj.Reference(), rules.BorrowSubjButActuallyObject(e.fromContext(g))))
		}
	}
}

// pass 7: general subject fallback.
func (e *Engine) resolveGeneralSubjFallback(events []*Predicate) {
	for _, p := range events {
		if p.Type != Normal {
			continue
		}
		if p.HasSubj(e.subjObj()) {
			continue
		}
		if p.Root.GovRel == e.Schema.Csubj || p.Root.GovRel == e.Schema.Csubjpass {
			continue
		}
		if ud.HasRelationPrefix(p.Root.GovRel, "acl") {
			continue
		}
		if p.HasBorrowedArg() {
			continue
		}
		gov := e.Parse.Governor(p.Root.Position)
		if gov == nil {
			continue
		}
		if g, ok := e.eventMap[gov.Position]; ok {
			if subj := g.Subj(e.subjObj()); subj != nil {
				p.Arguments = append(p.Arguments, withRule(subj.Reference(), rules.BorrowSubj(e.fromContext(g))))
				continue
			}
		}
		if topP := e.getTopXcomp(p); topP != nil {
			if subj := topP.Subj(e.subjObj()); subj != nil {
				p.Arguments = append(p.Arguments, withRule(subj.Reference(), rules.BorrowSubj(e.fromContext(topP))))
			}
		}
	}
}

// hasFromForMark reports whether p has a "mark" dependent whose surface
// text is "from" or "for" - the advcl special case in passes 4 and 6.
func hasFromForMark(parse *Parse, p *Predicate) bool {
	for _, edge := range parse.Dependents(p.Root.Position) {
		if edge.Relation != parse.Schema.Mark {
			continue
		}
		text := parse.Token(edge.DepPosition).Text
		if text == "from" || text == "for" {
			return true
		}
	}
	return false
}

// withRule appends an additional rule to a freshly-created/reference
// argument and returns it, for fluent borrowing call sites.
func withRule(a *Argument, r rules.Rule) *Argument {
	a.Rules = append(a.Rules, r)
	return a
}
