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

package linearize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lingua-ud/predpatt/predpatt"
)

// Marker vocabulary, per spec.md §6's table.
const (
	argOpen        = "^(("
	argClose       = "))$"
	predOpen       = "^((("
	predClose      = ")))$"
	predAsArgOpen  = "^(((:a"
	predAsArgClose = ")))$:a"
	somethingLit   = "SOMETHING:a="

	sufArg      = ":a"
	sufPred     = ":p"
	sufArgHead  = ":a_h"
	sufPredHead = ":p_h"
)

// Linearize renders instances as the round-trippable flat-string form
// spec.md §6 describes: one line per top-level predicate, with
// embedded clausal predicates nested recursively through the
// SOMETHING:a= marker (see BuildPredicateDependencies) rather than
// emitted as separate lines.
func Linearize(instances []*predpatt.Predicate, parse *predpatt.Parse) string {
	top := BuildPredicateDependencies(instances, parse)
	return Reemit(top)
}

// Reemit renders an already-nested top-level predicate list (Children
// populated, as BuildPredicateDependencies or ParseFlat leave them) back
// to flat-string form without needing the originating Parse - clausal
// arguments are recognized purely by a matching Child, not by
// re-querying the dependency relation. This is what lets a round trip
// (Linearize -> ParseFlat -> Reemit) be checked without ever
// reconstructing a full Parse from the flat text.
func Reemit(top []*predpatt.Predicate) string {
	lines := make([]string, 0, len(top))
	for _, p := range top {
		lines = append(lines, linearizePredicate(p, false))
	}
	return strings.Join(lines, "\n")
}

func linearizePredicate(p *predpatt.Predicate, asArg bool) string {
	open, close := predOpen, predClose
	if asArg {
		open, close = predAsArgOpen, predAsArgClose
	}

	items := make([]templateItem, 0, len(p.Tokens)+len(p.Arguments))
	for _, t := range p.Tokens {
		if t.Position == p.Root.Position {
			items = append(items, templateItem{t.Position, headText(p)})
			continue
		}
		items = append(items, templateItem{t.Position, t.Text + sufPred})
	}
	for _, arg := range p.Arguments {
		items = append(items, templateItem{arg.Position(), linearizeArgument(p, arg)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	parts := make([]string, 0, len(items)+2)
	parts = append(parts, open)
	for _, it := range items {
		parts = append(parts, it.text)
	}
	parts = append(parts, close)
	return strings.Join(parts, " ")
}

// headText realizes the predicate root's surface form in the flat
// encoding. Possessive and Appositive/AdjectivalModifier predicates
// have no real predicate word of their own (the relation itself - "X
// poss Y", "Y is/are Z" - is the predicate), so the literal pseudo-verb
// is emitted in place of the root token's text, per spec.md §6.
func headText(p *predpatt.Predicate) string {
	switch p.Type {
	case predpatt.Possessive:
		return "poss" + sufPredHead
	case predpatt.Appositive, predpatt.AdjectivalModifier:
		return "is/are" + sufPredHead
	default:
		return p.Root.Text + sufPredHead
	}
}

func linearizeArgument(p *predpatt.Predicate, arg *predpatt.Argument) string {
	if child := findChild(p, arg.Root.Position); child != nil {
		return somethingLit + linearizePredicate(child, true)
	}
	parts := make([]string, 0, len(arg.Tokens)+2)
	parts = append(parts, argOpen)
	for _, t := range arg.Tokens {
		suf := sufArg
		if t.Position == arg.Root.Position {
			suf = sufArgHead
		}
		parts = append(parts, t.Text+suf)
	}
	parts = append(parts, argClose)
	return strings.Join(parts, " ")
}

// ParseFlat reconstructs predicate instances from a flat-string form
// produced by Linearize. Per spec.md §6, reconstructed tokens carry no
// POS tag; their Position is assigned from the flat-string's own
// left-to-right token order rather than the original Parse's
// positions. Possessive predicates round-trip exactly (their head
// literal "poss" is unambiguous); Appositive and AdjectivalModifier
// share the "is/are" literal and are not distinguishable from the flat
// form alone, so ParseFlat always reconstructs that case as
// Appositive - a known, documented round-trip limitation rather than a
// silently wrong guess.
func ParseFlat(s string) ([]*predpatt.Predicate, error) {
	var out []*predpatt.Predicate
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		toks := strings.Fields(line)
		pos := 0
		p, idx, err := parsePredicateFlat(toks, 0, &pos)
		if err != nil {
			return nil, err
		}
		if idx != len(toks) {
			return nil, fmt.Errorf("linearize: trailing tokens after predicate span in %q", line)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePredicateFlat(toks []string, idx int, pos *int) (*predpatt.Predicate, int, error) {
	if idx >= len(toks) {
		return nil, idx, fmt.Errorf("linearize: unexpected end of input")
	}
	var wantClose string
	switch toks[idx] {
	case predOpen:
		wantClose = predClose
	case predAsArgOpen:
		wantClose = predAsArgClose
	default:
		return nil, idx, fmt.Errorf("linearize: expected predicate open marker, got %q", toks[idx])
	}
	idx++

	p := &predpatt.Predicate{Type: predpatt.Normal}
	var predTokens []*predpatt.Token
	var rootTok *predpatt.Token

	for idx < len(toks) && toks[idx] != wantClose {
		switch toks[idx] {
		case argOpen:
			arg, nidx, err := parseArgumentFlat(toks, idx, pos)
			if err != nil {
				return nil, idx, err
			}
			p.Arguments = append(p.Arguments, arg)
			idx = nidx
		case somethingLit:
			idx++
			child, nidx, err := parsePredicateFlat(toks, idx, pos)
			if err != nil {
				return nil, idx, err
			}
			idx = nidx
			p.Children = append(p.Children, child)
			p.Arguments = append(p.Arguments, &predpatt.Argument{Root: child.Root, Tokens: child.Tokens})
		default:
			text, isHead, err := splitSuffix(toks[idx], sufPredHead, sufPred)
			if err != nil {
				return nil, idx, err
			}
			t := &predpatt.Token{Position: *pos, Text: text, GovPosition: -1, GovRel: "root", Outgoing: []int{}}
			*pos++
			predTokens = append(predTokens, t)
			if isHead {
				rootTok = t
			}
			idx++
		}
	}
	if idx >= len(toks) {
		return nil, idx, fmt.Errorf("linearize: unterminated predicate span")
	}
	idx++ // consume close marker

	if rootTok == nil {
		return nil, idx, fmt.Errorf("linearize: predicate span has no head token")
	}
	switch rootTok.Text {
	case "poss":
		p.Type = predpatt.Possessive
	case "is/are":
		p.Type = predpatt.Appositive
	}
	p.Root = rootTok
	p.Tokens = predTokens
	return p, idx, nil
}

func parseArgumentFlat(toks []string, idx int, pos *int) (*predpatt.Argument, int, error) {
	idx++ // consume argOpen
	var argTokens []*predpatt.Token
	var rootTok *predpatt.Token
	for idx < len(toks) && toks[idx] != argClose {
		text, isHead, err := splitSuffix(toks[idx], sufArgHead, sufArg)
		if err != nil {
			return nil, idx, err
		}
		t := &predpatt.Token{Position: *pos, Text: text, GovPosition: -1, GovRel: "root", Outgoing: []int{}}
		*pos++
		argTokens = append(argTokens, t)
		if isHead {
			rootTok = t
		}
		idx++
	}
	if idx >= len(toks) {
		return nil, idx, fmt.Errorf("linearize: unterminated argument span")
	}
	idx++ // consume argClose
	if rootTok == nil && len(argTokens) > 0 {
		rootTok = argTokens[0]
	}
	return &predpatt.Argument{Root: rootTok, Tokens: argTokens}, idx, nil
}

// splitSuffix strips whichever of the head/plain suffix pair tok ends
// with, reporting which one matched. The head suffix is checked first
// since it is itself a superstring of the plain one's trailing bytes.
func splitSuffix(tok, headSuf, plainSuf string) (string, bool, error) {
	if strings.HasSuffix(tok, headSuf) {
		return strings.TrimSuffix(tok, headSuf), true, nil
	}
	if strings.HasSuffix(tok, plainSuf) {
		return strings.TrimSuffix(tok, plainSuf), false, nil
	}
	return "", false, fmt.Errorf("linearize: token %q missing expected suffix", tok)
}
