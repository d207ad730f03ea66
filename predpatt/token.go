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

// Package predpatt implements the predicate-argument extraction engine:
// the in-memory dependency tree (Token/Edge/Parse), the Predicate and
// Argument value types, and the eleven-phase extraction pipeline that
// turns a Parse into a set of predicate instances.
package predpatt

import (
	"fmt"

	"github.com/lingua-ud/predpatt/ud"
)

// Token is a single node of a dependency parse. Position is the
// 0-based index within the sentence and is the token's identity - a
// token refers to its governor and dependents by position
// (GovPosition, Outgoing) rather than by pointer, so that cyclic
// governor/dependent back-references never need garbage-cycle
// bookkeeping (see design note on index-based back-references).
// Predicate and Argument values do hold *Token pointers into the
// owning Parse.
type Token struct {
	Position int
	Text     string
	Tag      string // UD POS tag; may be "" for tokens materialized from a linearized form.

	// GovPosition is -1 for the syntactic root. GovRel is "root" in
	// that case (matching the Parse-construction contract in spec.md
	// §6).
	GovPosition int
	GovRel      string

	// Outgoing holds the positions of this token's dependents, in the
	// order the edges were declared. The engine does not read it; it
	// walks dependents through Parse.Dependents, which keeps the same
	// declaration order.
	Outgoing []int
}

// IsWord reports whether the token is not punctuation.
func (t *Token) IsWord() bool { return t.Tag != ud.PUNCT }

// Edge is one dependency arc: relation label, governor token position,
// dependent token position.
type Edge struct {
	Relation     string
	GovPosition  int
	DepPosition  int
}

// Parse is an ordered sequence of tokens plus O(1) governor/dependents
// lookups. The schema version is fixed at construction and never
// changes for the lifetime of the Parse.
type Parse struct {
	Tokens []*Token
	Schema *ud.Schema

	govOf  map[int]int // dependent position -> governor position; absent key means root
	depsOf map[int][]Edge
}

// TokenSpec is one input token: surface text and UD POS tag.
type TokenSpec struct {
	Text string
	Tag  string
}

// EdgeSpec is one input edge. GovPosition == -1 means "syntactic root".
type EdgeSpec struct {
	Relation    string
	GovPosition int
	DepPosition int
}

// MalformedParseError reports a structural problem detected while
// materializing a Parse from edge triples: an edge naming a token index
// out of range, or more than one root. NewParse initializes Outgoing for
// every token, and nothing later checks a token's Outgoing list.
type MalformedParseError struct {
	Reason   string
	Position int
}

func (e *MalformedParseError) Error() string {
	return fmt.Sprintf("malformed parse at token %d: %s", e.Position, e.Reason)
}

// NewParse builds a Parse from the primitive triples spec.md §6
// describes: tokens, edges (governor index -1 meaning "syntactic
// root"), and a schema version. Each token is assigned a position
// equal to its slice index; every edge links the dependent's governor
// slot and appends to the governor's outgoing list; tokens that never
// appear as a dependent keep GovPosition -1 and GovRel "root".
func NewParse(tokens []TokenSpec, edges []EdgeSpec, version ud.Version) (*Parse, error) {
	schema, err := ud.ForVersion(version)
	if err != nil {
		return nil, err
	}

	toks := make([]*Token, len(tokens))
	for i, ts := range tokens {
		toks[i] = &Token{
			Position:    i,
			Text:        ts.Text,
			Tag:         ts.Tag,
			GovPosition: -1,
			GovRel:      "root",
			Outgoing:    []int{},
		}
	}

	p := &Parse{
		Tokens: toks,
		Schema: schema,
		govOf:  make(map[int]int),
		depsOf: make(map[int][]Edge),
	}

	for _, e := range edges {
		if e.DepPosition < 0 || e.DepPosition >= len(toks) {
			return nil, &MalformedParseError{Reason: "dependent index out of range", Position: e.DepPosition}
		}
		if e.GovPosition >= len(toks) {
			return nil, &MalformedParseError{Reason: "governor index out of range", Position: e.GovPosition}
		}
		dep := toks[e.DepPosition]
		dep.GovPosition = e.GovPosition
		dep.GovRel = e.Relation
		if e.GovPosition >= 0 {
			toks[e.GovPosition].Outgoing = append(toks[e.GovPosition].Outgoing, e.DepPosition)
			p.govOf[e.DepPosition] = e.GovPosition
			p.depsOf[e.GovPosition] = append(p.depsOf[e.GovPosition], Edge{e.Relation, e.GovPosition, e.DepPosition})
		}
	}

	rootPos := -1
	for _, t := range toks {
		if t.GovPosition >= 0 {
			continue
		}
		if rootPos >= 0 {
			return nil, &MalformedParseError{Reason: "more than one root", Position: t.Position}
		}
		rootPos = t.Position
	}

	return p, nil
}

// Governor returns the governor token of pos, or nil if pos is the
// syntactic root.
func (p *Parse) Governor(pos int) *Token {
	if pos < 0 || pos >= len(p.Tokens) {
		return nil
	}
	g := p.Tokens[pos].GovPosition
	if g < 0 {
		return nil
	}
	return p.Tokens[g]
}

// Dependents returns the outgoing edges of the token at pos, in
// declaration order.
func (p *Parse) Dependents(pos int) []Edge {
	return p.depsOf[pos]
}

// Token returns the token at pos.
func (p *Parse) Token(pos int) *Token {
	if pos < 0 || pos >= len(p.Tokens) {
		return nil
	}
	return p.Tokens[pos]
}

// HardToFindArguments implements token.hard_to_find_arguments() from
// spec.md §4.2: true iff the token's governor relation is in
// HARD_TO_FIND_ARGS and none of its own outgoing edges carry a SUBJ or
// OBJ relation.
func (p *Parse) HardToFindArguments(t *Token) bool {
	for _, e := range p.Dependents(t.Position) {
		if p.Schema.SUBJ.Contains(e.Relation) || p.Schema.OBJ.Contains(e.Relation) {
			return false
		}
	}
	return p.Schema.HardToFindArgs.Contains(t.GovRel)
}

// ArgumentLike reports whether t's own governor-relation is one of the
// ARG_LIKE relations - used by the ccomp/argument-like special case in
// predicate-root identification (spec.md §4.4).
func (p *Parse) ArgumentLike(t *Token) bool {
	return p.Schema.ARGLike.Contains(t.GovRel)
}
