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
	"strings"

	"github.com/lingua-ud/predpatt/predpatt/rules"
)

// Argument is a participant slot of a Predicate: one root token plus
// the span of tokens assembled for it during phrase construction.
type Argument struct {
	Root       *Token
	Tokens     []*Token
	Rules      []rules.Rule
	IsBorrowed bool
}

// NewArgument creates an argument rooted at root with an initial rule
// set. Per spec.md's reference-implementation note, the rules slice is
// always this argument's own - nothing here aliases a shared default.
func NewArgument(root *Token, initial ...rules.Rule) *Argument {
	rs := make([]rules.Rule, len(initial))
	copy(rs, initial)
	return &Argument{Root: root, Rules: rs}
}

// Position is the argument's identity - its root token's position.
func (a *Argument) Position() int { return a.Root.Position }

// Copy returns a deep copy: rules and tokens are both fresh slices, and
// IsBorrowed is reset to false (copy() in the reference never preserves
// share, only reference() does).
func (a *Argument) Copy() *Argument {
	c := &Argument{
		Root:   a.Root,
		Rules:  append([]rules.Rule(nil), a.Rules...),
		Tokens: append([]*Token(nil), a.Tokens...),
	}
	return c
}

// Reference produces the borrowed-argument form used by resolution
// (spec.md §4.6): a fresh argument whose Rules are copied but whose
// Tokens slice is the *same backing array* as the lender's - per
// spec.md's explicit note, sharing the span is a reimplementation
// choice rather than a hard requirement, and it is what the reference
// engine does. Only in-place writes to that array are shared: phrase
// assembly and trivial stripping assign the lender a new Tokens slice,
// which the borrower does not see (the engine copies lender spans into
// borrowed arguments after phrase assembly for that reason).
func (a *Argument) Reference() *Argument {
	r := &Argument{
		Root:       a.Root,
		Rules:      append([]rules.Rule(nil), a.Rules...),
		Tokens:     a.Tokens,
		IsBorrowed: true,
	}
	return r
}

// Phrase joins the argument's token texts in assembled order.
func (a *Argument) Phrase() string {
	parts := make([]string, len(a.Tokens))
	for i, t := range a.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// IsClausal reports whether the argument root's governor-relation marks
// an embedded clause (ccomp/csubj/csubjpass/xcomp) under the given
// parse's schema.
func (a *Argument) IsClausal(p *Parse) bool {
	s := p.Schema
	rel := a.Root.GovRel
	return rel == s.Ccomp || rel == s.Csubj || rel == s.Csubjpass || rel == s.Xcomp
}

// SortArgumentsByPosition sorts a slice of arguments in place by root
// position, the order spec.md §4.3 step 5 requires before phrase
// assembly.
func SortArgumentsByPosition(args []*Argument) {
	sort.SliceStable(args, func(i, j int) bool {
		return args[i].Position() < args[j].Position()
	})
}
