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

// conjunctionResolution implements spec.md §4.8 for a predicate whose
// governor-relation is conj: it borrows negation from the governing
// predicate when the two share a subject, and - only when cut mode is
// off and the immediate governor is itself an xcomp dependent - borrows
// the bulk of the outer xcomp predicate's phrase so each conjunct reads as
// a complete clause ("they start firing and shooting" -> "start
// firing" / "start shooting").
func (e *Engine) conjunctionResolution(p *Predicate) {
	gov := e.Parse.Governor(p.Root.Position)
	if gov == nil {
		return
	}

	if g, ok := e.eventMap[gov.Position]; ok && p.ShareSubj(g, e.subjObj()) {
		for _, edge := range e.Parse.Dependents(g.Root.Position) {
			if edge.Relation != e.Schema.Neg {
				continue
			}
			tok := e.Parse.Token(edge.DepPosition)
			p.Tokens = append(p.Tokens, tok)
			p.Rules = append(p.Rules, rules.PredConjBorrowAuxNeg(e.fromContext(g), tok.Text))
		}
	}

	if e.Config.Cut || gov.GovRel != e.Schema.Xcomp {
		return
	}
	topG := e.getTopXcomp(p)
	if topG == nil {
		return
	}

	excluded := map[int]bool{gov.Position: true}
	for _, edge := range e.Parse.Dependents(gov.Position) {
		if edge.Relation == e.Schema.Advmod || edge.Relation == e.Schema.Case {
			excluded[edge.DepPosition] = true
		}
	}
	for _, tok := range topG.Tokens {
		if excluded[tok.Position] {
			continue
		}
		p.Tokens = append(p.Tokens, tok)
		p.Rules = append(p.Rules, rules.PredConjBorrowTokensXcomp(e.fromContext(topG), tok.Text))
	}
}
