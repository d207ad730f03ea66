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
	"fmt"
	"strconv"
	"strings"

	"github.com/lingua-ud/predpatt/predpatt/rules"
)

// PredicateType selects argument-identification behavior and the
// phrase-assembly/pretty-print template a Predicate uses.
type PredicateType int

const (
	Normal PredicateType = iota
	Possessive
	Appositive
	AdjectivalModifier
)

func (t PredicateType) String() string {
	switch t {
	case Possessive:
		return "poss"
	case Appositive:
		return "appos"
	case AdjectivalModifier:
		return "amod"
	default:
		return "normal"
	}
}

// Predicate is one predicate instance: a head token, a type, the
// assembled token phrase, its arguments, and the rule provenance chain
// that produced it.
type Predicate struct {
	Root      *Token
	Type      PredicateType
	Tokens    []*Token
	Arguments []*Argument
	Rules     []rules.Rule

	// Children holds predicates nested underneath this one for
	// linearization (see linearize.BuildPredicateDependencies); it is
	// populated only by that package, never by the engine itself.
	Children []*Predicate
}

// NewPredicate creates a predicate rooted at root with an initial rule.
func NewPredicate(root *Token, typ PredicateType, initial rules.Rule) *Predicate {
	return &Predicate{Root: root, Type: typ, Rules: []rules.Rule{initial}}
}

// Position is the predicate's identity - its root token's position.
func (p *Predicate) Position() int { return p.Root.Position }

// Copy returns a predicate sharing reference-arguments with the
// original (via Argument.Reference on each) and a fresh copy of Tokens
// and Rules. Used once per coordination-expansion combination (spec.md
// §4.9) so that each cartesian-product instance is an independent value.
func (p *Predicate) Copy() *Predicate {
	c := &Predicate{
		Root:   p.Root,
		Type:   p.Type,
		Tokens: append([]*Token(nil), p.Tokens...),
		Rules:  append([]rules.Rule(nil), p.Rules...),
	}
	c.Arguments = make([]*Argument, len(p.Arguments))
	for i, a := range p.Arguments {
		c.Arguments[i] = a.Reference()
	}
	return c
}

// HasToken reports whether t is already part of this predicate's phrase.
func (p *Predicate) HasToken(t *Token) bool {
	for _, x := range p.Tokens {
		if x.Position == t.Position {
			return true
		}
	}
	return false
}

// HasSubj reports whether any argument's root has a SUBJ relation.
func (p *Predicate) HasSubj(schema subjObjSchema) bool {
	return p.Subj(schema) != nil
}

// HasObj reports whether any argument's root has an OBJ relation.
func (p *Predicate) HasObj(schema subjObjSchema) bool {
	return p.Obj(schema) != nil
}

type subjObjSchema interface {
	IsSubj(rel string) bool
	IsObj(rel string) bool
}

// Subj returns the first argument whose root carries a SUBJ relation,
// or nil.
func (p *Predicate) Subj(schema subjObjSchema) *Argument {
	for _, a := range p.Arguments {
		if schema.IsSubj(a.Root.GovRel) {
			return a
		}
	}
	return nil
}

// Obj returns the first argument whose root carries an OBJ relation, or
// nil.
func (p *Predicate) Obj(schema subjObjSchema) *Argument {
	for _, a := range p.Arguments {
		if schema.IsObj(a.Root.GovRel) {
			return a
		}
	}
	return nil
}

// ShareSubj reports whether p and other have subjects rooted at the
// same token position. Two predicates with no subject do not "share"
// one - both must have a subject for this to ever return true.
func (p *Predicate) ShareSubj(other *Predicate, schema subjObjSchema) bool {
	s1, s2 := p.Subj(schema), other.Subj(schema)
	if s1 == nil || s2 == nil {
		return false
	}
	return s1.Root.Position == s2.Root.Position
}

// HasBorrowedArg reports whether any argument was borrowed from another
// predicate (non-empty provenance on an IsBorrowed argument).
func (p *Predicate) HasBorrowedArg() bool {
	for _, a := range p.Arguments {
		if a.IsBorrowed && len(a.Rules) > 0 {
			return true
		}
	}
	return false
}

// IsBroken reports whether this predicate should be dropped during
// final cleanup (spec.md §4.3 step 11 / §4.11): empty token list, any
// argument with an empty token list, or a Possessive predicate without
// exactly two arguments.
func (p *Predicate) IsBroken() bool {
	if len(p.Tokens) == 0 {
		return true
	}
	for _, a := range p.Arguments {
		if len(a.Tokens) == 0 {
			return true
		}
	}
	if p.Type == Possessive && len(p.Arguments) != 2 {
		return true
	}
	return false
}

// Identifier is a stable string identity for a predicate instance,
// useful for deduplication in linearization's dependency-building pass.
func (p *Predicate) Identifier() string {
	parts := make([]string, len(p.Arguments))
	for i, a := range p.Arguments {
		parts[i] = strconv.Itoa(a.Position())
	}
	return fmt.Sprintf("pred.%s.%d.%s", p.Type, p.Position(), strings.Join(parts, "."))
}
