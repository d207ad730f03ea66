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
	"github.com/lingua-ud/predpatt/ud"
)

// Engine runs the eleven-phase extraction pipeline over one Parse and
// Config. It is strictly single-threaded and synchronous (spec.md §5):
// one call to New runs extraction to completion before returning, and
// the returned Instances slice is owned by the caller - the Engine
// keeps no references into its own intermediate state afterward.
type Engine struct {
	Parse  *Parse
	Config Config
	Schema *ud.Schema

	events   []*Predicate
	eventMap map[int]*Predicate
	ready    bool // true once identification has populated eventMap; no method checks it

	Instances []*Predicate
}

// InvariantViolationError is a fatal internal-consistency failure per
// spec.md §7 - never recovered from, always surfaced.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string { return "invariant violation: " + e.Reason }

// SchemaMismatchError reports that a Config was built for a different UD
// schema version than the Parse it is being run against - spec.md §6
// lists `schema` as a Config option, so a caller naming one version in
// the Config while the Parse was materialized under another is a setup
// error, not a silently-resolved one.
type SchemaMismatchError struct {
	ConfigSchema ud.Version
	ParseSchema  ud.Version
}

func (e *SchemaMismatchError) Error() string {
	return "predpatt: config schema " + string(e.ConfigSchema) + " does not match parse schema " + string(e.ParseSchema)
}

// New constructs an Engine for parse under config and runs the full
// extraction pipeline, returning the resulting predicate instances.
// config.Schema must name the same UD version the parse was built
// under (spec.md §6's `schema` option) - New validates this rather than
// letting the engine silently match relations against the wrong table.
func New(parse *Parse, config Config) (*Engine, error) {
	if config.Schema != "" && config.Schema != parse.Schema.Version {
		return nil, &SchemaMismatchError{ConfigSchema: config.Schema, ParseSchema: parse.Schema.Version}
	}
	e := &Engine{
		Parse:    parse,
		Config:   config,
		Schema:   parse.Schema,
		eventMap: make(map[int]*Predicate),
	}
	if err := e.extract(); err != nil {
		return nil, err
	}
	return e, nil
}

// schemaAdapter satisfies subjObjSchema for *ud.Schema.
type schemaAdapter struct{ s *ud.Schema }

func (a schemaAdapter) IsSubj(rel string) bool { return a.s.SUBJ.Contains(rel) }
func (a schemaAdapter) IsObj(rel string) bool  { return a.s.OBJ.Contains(rel) }

func (e *Engine) subjObj() subjObjSchema { return schemaAdapter{e.Schema} }

// extract runs the pipeline exactly as spec.md §4.3 orders it.
func (e *Engine) extract() error {
	events := e.identifyPredicateRoots()

	e.eventMap = make(map[int]*Predicate, len(events))
	for _, p := range events {
		e.eventMap[p.Position()] = p
	}
	e.ready = true

	for _, p := range events {
		p.Arguments = e.argumentExtract(p)
	}

	events = e.resolveArguments(events)
	sortPredicatesByPosition(events)
	for _, p := range events {
		SortArgumentsByPosition(p.Arguments)
	}
	e.events = events

	for _, p := range events {
		if err := e.predPhraseExtract(p); err != nil {
			return err
		}
		for _, arg := range p.Arguments {
			if !arg.IsBorrowed && len(arg.Tokens) == 0 {
				e.argPhraseExtract(p, arg)
			}
		}

		if e.Config.Simple {
			kept := p.Arguments[:0:0]
			for _, arg := range p.Arguments {
				if e.simpleArg(p, arg) {
					kept = append(kept, arg)
				}
			}
			p.Arguments = kept
		}

		if p.Root.GovRel == e.Schema.Conj {
			e.conjunctionResolution(p)
		}
	}

	e.backfillBorrowedTokens(events)

	var instances []*Predicate
	for _, p := range events {
		if len(p.Tokens) > 0 {
			instances = append(instances, e.expandCoord(p)...)
		}
	}

	if e.Config.ResolveRelcl && e.Config.BorrowArgForRelcl {
		for _, p := range instances {
			if !rules.Has(p.Rules, rules.PredResolveRelcl()) {
				continue
			}
			kept := make([]*Argument, 0, len(p.Arguments))
			changed := false
			for _, a := range p.Arguments {
				phrase := a.Phrase()
				if phrase == "that" || phrase == "which" || phrase == "who" {
					changed = true
					continue
				}
				kept = append(kept, a)
			}
			if changed {
				p.Arguments = kept
				p.Rules = append(p.Rules, rules.EnRelclDummyArgFilter())
			}
		}
	}

	e.cleanup(instances)
	e.removeBrokenPredicates()
	return nil
}

func sortPredicatesByPosition(preds []*Predicate) {
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Position() < preds[j].Position() })
}

// parents returns, starting from predicate's governor and climbing the
// governor chain, the identified predicate of each ancestor that has
// one, nearest first. Non-predicate ancestors are skipped silently;
// climbing always continues up to the root.
func (e *Engine) parents(p *Predicate) []*Predicate {
	var out []*Predicate
	cur := e.Parse.Governor(p.Root.Position)
	for cur != nil {
		if g, ok := e.eventMap[cur.Position]; ok {
			out = append(out, g)
		}
		cur = e.Parse.Governor(cur.Position)
	}
	return out
}

// getTopXcomp walks up p's governor chain past every ancestor whose
// governor-relation is xcomp and returns the identified predicate at
// the first ancestor that is not itself an xcomp dependent (the top of
// the xcomp chain). It returns nil when neither p nor any ancestor on
// the way is an xcomp dependent, or when that top token is not an
// identified predicate.
func (e *Engine) getTopXcomp(p *Predicate) *Predicate {
	inChain := p.Root.GovRel == e.Schema.Xcomp
	cur := e.Parse.Governor(p.Root.Position)
	for cur != nil && cur.GovRel == e.Schema.Xcomp {
		inChain = true
		cur = e.Parse.Governor(cur.Position)
	}
	if !inChain || cur == nil {
		return nil
	}
	return e.eventMap[cur.Position]
}

// subtree performs a breadth-first walk from root, yielding root itself
// and every descendant reachable through edges for which follow
// returns true. Tokens come out in BFS order, not position order; the
// cleanup pass re-sorts a span by position only when trivial stripping
// runs (Strip on, BigArgs off), and otherwise keeps this order.
func (e *Engine) subtree(root *Token, follow func(Edge) bool) []*Token {
	out := []*Token{root}
	queue := []*Token{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range e.Parse.Dependents(cur.Position) {
			if follow == nil || follow(edge) {
				dep := e.Parse.Token(edge.DepPosition)
				out = append(out, dep)
				queue = append(queue, dep)
			}
		}
	}
	return out
}

func (e *Engine) fromContext(p *Predicate) rules.FromContext {
	return rules.FromContext{RootPosition: p.Root.Position, RootText: p.Root.Text}
}

// backfillBorrowedTokens copies a lender argument's assembled token span
// into every still-empty borrowed reference sharing its root position.
// Reference() is taken during argument resolution, before phrase
// assembly runs, so a borrowed copy's Tokens field cannot simply alias
// the lender's slice variable - phrase assembly fills it in by
// reassignment, not by an in-place append the copy would already see.
// This pass reconciles the two once every predicate's own arguments
// have been assembled, and must run after that assembly but before
// expandCoord, which would otherwise treat a not-yet-backfilled
// borrowed argument as empty and drop it.
func (e *Engine) backfillBorrowedTokens(events []*Predicate) {
	lenders := make(map[int][]*Token, len(events))
	for _, p := range events {
		for _, arg := range p.Arguments {
			if !arg.IsBorrowed && len(arg.Tokens) > 0 {
				lenders[arg.Root.Position] = arg.Tokens
			}
		}
	}
	for _, p := range events {
		for _, arg := range p.Arguments {
			if arg.IsBorrowed && len(arg.Tokens) == 0 {
				if toks, ok := lenders[arg.Root.Position]; ok {
					arg.Tokens = toks
				}
			}
		}
	}
}
