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

package predpatt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-ud/predpatt/predpatt"
	"github.com/lingua-ud/predpatt/predpatt/rules"
	"github.com/lingua-ud/predpatt/ud"
)

func ruleNames(rs []rules.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

func findPredicate(t *testing.T, instances []*predpatt.Predicate, pos int) *predpatt.Predicate {
	t.Helper()
	for _, p := range instances {
		if p.Position() == pos {
			return p
		}
	}
	t.Fatalf("no predicate at position %d", pos)
	return nil
}

// "I eat apples", every resolution flag off (the defaults): one Normal
// predicate rooted at "eat", two arguments at the subject and object
// positions, both carrying the direct subj/obj rule.
func TestEngine_IEatApples(t *testing.T) {
	toks := []predpatt.TokenSpec{
		{Text: "I", Tag: ud.PRON},
		{Text: "eat", Tag: ud.VERB},
		{Text: "apples", Tag: ud.NOUN},
	}
	edges := []predpatt.EdgeSpec{
		{Relation: ud.V1Schema.Nsubj, GovPosition: 1, DepPosition: 0},
		{Relation: ud.V1Schema.Dobj, GovPosition: 1, DepPosition: 2},
	}
	parse, err := predpatt.NewParse(toks, edges, ud.V1)
	require.NoError(t, err)

	eng, err := predpatt.New(parse, predpatt.NewConfig())
	require.NoError(t, err)

	require.Len(t, eng.Instances, 1)
	p := eng.Instances[0]
	assert.Equal(t, predpatt.Normal, p.Type)
	assert.Equal(t, 1, p.Position())
	require.Len(t, p.Arguments, 2)
	assert.Equal(t, 0, p.Arguments[0].Position())
	assert.Equal(t, 2, p.Arguments[1].Position())
	assert.Equal(t, []string{"g1"}, ruleNames(p.Arguments[0].Rules))
	assert.Equal(t, []string{"g1"}, ruleNames(p.Arguments[1].Rules))
}

// "the red car" with resolve_amod on: the adjective becomes its own
// AdjectivalModifier predicate, borrowing its governor ("car") as its
// single argument, which pulls in the determiner.
func TestEngine_TheRedCar(t *testing.T) {
	toks := []predpatt.TokenSpec{
		{Text: "the", Tag: ud.DET},
		{Text: "red", Tag: ud.ADJ},
		{Text: "car", Tag: ud.NOUN},
	}
	edges := []predpatt.EdgeSpec{
		{Relation: "det", GovPosition: 2, DepPosition: 0},
		{Relation: ud.V1Schema.Amod, GovPosition: 2, DepPosition: 1},
	}
	parse, err := predpatt.NewParse(toks, edges, ud.V1)
	require.NoError(t, err)

	eng, err := predpatt.New(parse, predpatt.NewConfig(predpatt.WithResolveAmod()))
	require.NoError(t, err)

	require.Len(t, eng.Instances, 1)
	p := eng.Instances[0]
	assert.Equal(t, predpatt.AdjectivalModifier, p.Type)
	assert.Equal(t, 1, p.Position())
	require.Len(t, p.Arguments, 1)
	arg := p.Arguments[0]
	assert.Equal(t, 2, arg.Position())
	assert.True(t, rules.Has(arg.Rules, rules.I()))
	assert.Equal(t, "the car", arg.Phrase())
}

// "John's car" with resolve_poss on: a Possessive predicate rooted at
// the possessor, with the possessed noun (w1) and the possessor itself
// (w2) as its two arguments.
func TestEngine_JohnsCar(t *testing.T) {
	toks := []predpatt.TokenSpec{
		{Text: "John", Tag: ud.PROPN},
		{Text: "car", Tag: ud.NOUN},
	}
	edges := []predpatt.EdgeSpec{
		{Relation: ud.V1Schema.NmodPoss, GovPosition: 1, DepPosition: 0},
	}
	parse, err := predpatt.NewParse(toks, edges, ud.V1)
	require.NoError(t, err)

	eng, err := predpatt.New(parse, predpatt.NewConfig(predpatt.WithResolvePoss()))
	require.NoError(t, err)

	require.Len(t, eng.Instances, 1)
	p := eng.Instances[0]
	assert.Equal(t, predpatt.Possessive, p.Type)
	assert.Equal(t, 0, p.Position())
	require.Len(t, p.Arguments, 2)

	var w1, w2 *predpatt.Argument
	for _, a := range p.Arguments {
		switch {
		case rules.Has(a.Rules, rules.W1()):
			w1 = a
		case rules.Has(a.Rules, rules.W2()):
			w2 = a
		}
	}
	require.NotNil(t, w1)
	require.NotNil(t, w2)
	assert.Equal(t, "car", w1.Phrase())
	assert.Equal(t, "John", w2.Phrase())
}

// "Sam, the CEO, arrived" with resolve_appos on: two predicates, the
// Normal "arrived" (subject Sam) and the Appositive "CEO" (argument
// Sam, via rule j), which pulls its own determiner in.
func TestEngine_SamTheCEOArrived(t *testing.T) {
	toks := []predpatt.TokenSpec{
		{Text: "Sam", Tag: ud.PROPN},
		{Text: "the", Tag: ud.DET},
		{Text: "CEO", Tag: ud.NOUN},
		{Text: "arrived", Tag: ud.VERB},
	}
	edges := []predpatt.EdgeSpec{
		{Relation: ud.V1Schema.Nsubj, GovPosition: 3, DepPosition: 0},
		{Relation: ud.V1Schema.Appos, GovPosition: 0, DepPosition: 2},
		{Relation: "det", GovPosition: 2, DepPosition: 1},
	}
	parse, err := predpatt.NewParse(toks, edges, ud.V1)
	require.NoError(t, err)

	eng, err := predpatt.New(parse, predpatt.NewConfig(predpatt.WithResolveAppos()))
	require.NoError(t, err)

	require.Len(t, eng.Instances, 2)

	arrived := findPredicate(t, eng.Instances, 3)
	assert.Equal(t, predpatt.Normal, arrived.Type)
	require.Len(t, arrived.Arguments, 1)
	assert.Equal(t, 0, arrived.Arguments[0].Position())

	ceo := findPredicate(t, eng.Instances, 2)
	assert.Equal(t, predpatt.Appositive, ceo.Type)
	require.Len(t, ceo.Arguments, 1)
	assert.Equal(t, 0, ceo.Arguments[0].Position())
	assert.True(t, rules.Has(ceo.Arguments[0].Rules, rules.J()))
	assert.Equal(t, "the CEO", predicatePhrase(ceo))
}

func predicatePhrase(p *predpatt.Predicate) string {
	out := ""
	for i, t := range p.Tokens {
		if i > 0 {
			out += " "
		}
		out += t.Text
	}
	return out
}

// "He runs and jumps": two Normal predicates, the second conjunct
// borrowing the first's subject since it has none of its own.
func TestEngine_HeRunsAndJumps(t *testing.T) {
	toks := []predpatt.TokenSpec{
		{Text: "He", Tag: ud.PRON},
		{Text: "runs", Tag: ud.VERB},
		{Text: "and", Tag: ud.CCONJ},
		{Text: "jumps", Tag: ud.VERB},
	}
	edges := []predpatt.EdgeSpec{
		{Relation: ud.V1Schema.Nsubj, GovPosition: 1, DepPosition: 0},
		{Relation: ud.V1Schema.Conj, GovPosition: 1, DepPosition: 3},
		{Relation: ud.V1Schema.Cc, GovPosition: 3, DepPosition: 2},
	}
	parse, err := predpatt.NewParse(toks, edges, ud.V1)
	require.NoError(t, err)

	eng, err := predpatt.New(parse, predpatt.NewConfig())
	require.NoError(t, err)

	require.Len(t, eng.Instances, 2)

	runs := findPredicate(t, eng.Instances, 1)
	require.Len(t, runs.Arguments, 1)
	assert.Equal(t, 0, runs.Arguments[0].Position())
	assert.False(t, runs.Arguments[0].IsBorrowed)

	jumps := findPredicate(t, eng.Instances, 3)
	assert.True(t, rules.Has(jumps.Rules, rules.F()))
	require.Len(t, jumps.Arguments, 1)
	borrowed := jumps.Arguments[0]
	assert.Equal(t, 0, borrowed.Position())
	assert.True(t, borrowed.IsBorrowed)
	assert.True(t, rules.Has(borrowed.Rules, rules.BorrowSubj(rules.FromContext{})))
	assert.Equal(t, "He", borrowed.Phrase())
}

// Coordination expansion cardinality: "dogs and cats run" has one
// argument with a two-way coordinate set. With resolve_conj on, the
// cartesian product yields two independent instances; with it off, a
// single instance whose argument spans the whole coordinated phrase.
func TestEngine_CoordinationCardinality(t *testing.T) {
	build := func() (*predpatt.Parse, error) {
		toks := []predpatt.TokenSpec{
			{Text: "dogs", Tag: ud.NOUN},
			{Text: "and", Tag: ud.CCONJ},
			{Text: "cats", Tag: ud.NOUN},
			{Text: "run", Tag: ud.VERB},
		}
		edges := []predpatt.EdgeSpec{
			{Relation: ud.V1Schema.Nsubj, GovPosition: 3, DepPosition: 0},
			{Relation: ud.V1Schema.Conj, GovPosition: 0, DepPosition: 2},
			{Relation: ud.V1Schema.Cc, GovPosition: 2, DepPosition: 1},
		}
		return predpatt.NewParse(toks, edges, ud.V1)
	}

	t.Run("resolve_conj off: one instance, wide argument", func(t *testing.T) {
		parse, err := build()
		require.NoError(t, err)
		eng, err := predpatt.New(parse, predpatt.NewConfig())
		require.NoError(t, err)
		require.Len(t, eng.Instances, 1)
		assert.Equal(t, "dogs and cats", eng.Instances[0].Arguments[0].Phrase())
	})

	t.Run("resolve_conj on: cartesian product of two", func(t *testing.T) {
		parse, err := build()
		require.NoError(t, err)
		eng, err := predpatt.New(parse, predpatt.NewConfig(predpatt.WithResolveConj()))
		require.NoError(t, err)
		require.Len(t, eng.Instances, 2)
		phrases := map[string]bool{}
		for _, p := range eng.Instances {
			require.Len(t, p.Arguments, 1)
			phrases[p.Arguments[0].Phrase()] = true
		}
		assert.True(t, phrases["dogs"])
		assert.True(t, phrases["cats"])
	})
}

// Determinism: running the pipeline twice over equivalent input
// produces byte-identical rule-name sequences and argument structure.
func TestEngine_Determinism(t *testing.T) {
	run := func() []string {
		toks := []predpatt.TokenSpec{
			{Text: "I", Tag: ud.PRON},
			{Text: "eat", Tag: ud.VERB},
			{Text: "apples", Tag: ud.NOUN},
		}
		edges := []predpatt.EdgeSpec{
			{Relation: ud.V1Schema.Nsubj, GovPosition: 1, DepPosition: 0},
			{Relation: ud.V1Schema.Dobj, GovPosition: 1, DepPosition: 2},
		}
		parse, err := predpatt.NewParse(toks, edges, ud.V1)
		require.NoError(t, err)
		eng, err := predpatt.New(parse, predpatt.NewConfig())
		require.NoError(t, err)
		var names []string
		for _, p := range eng.Instances {
			names = append(names, ruleNames(p.Rules)...)
			for _, a := range p.Arguments {
				names = append(names, ruleNames(a.Rules)...)
			}
		}
		return names
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

// Schema invariance: the same sentence structure, expressed through
// each schema's own relation spellings (dobj vs obj), produces the
// same rule names and argument count.
func TestEngine_SchemaInvariance(t *testing.T) {
	for _, version := range []ud.Version{ud.V1, ud.V2} {
		t.Run(string(version), func(t *testing.T) {
			schema, err := ud.ForVersion(version)
			require.NoError(t, err)

			toks := []predpatt.TokenSpec{
				{Text: "I", Tag: ud.PRON},
				{Text: "eat", Tag: ud.VERB},
				{Text: "apples", Tag: ud.NOUN},
			}
			edges := []predpatt.EdgeSpec{
				{Relation: schema.Nsubj, GovPosition: 1, DepPosition: 0},
				{Relation: schema.Dobj, GovPosition: 1, DepPosition: 2},
			}
			parse, err := predpatt.NewParse(toks, edges, version)
			require.NoError(t, err)

			eng, err := predpatt.New(parse, predpatt.NewConfig(predpatt.WithSchema(version)))
			require.NoError(t, err)

			require.Len(t, eng.Instances, 1)
			p := eng.Instances[0]
			require.Len(t, p.Arguments, 2)
			assert.Equal(t, []string{"g1"}, ruleNames(p.Arguments[0].Rules))
			assert.Equal(t, []string{"g1"}, ruleNames(p.Arguments[1].Rules))
		})
	}
}
