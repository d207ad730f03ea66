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

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lingua-ud/predpatt/predpatt/rules"
)

// Rule names are the externally-visible contract (they appear in the
// rulestats report and in stored records) so their spellings are pinned
// here individually rather than generated, the way a typo in one would
// otherwise slip past a loop-based check.
func TestRuleNameSpellings(t *testing.T) {
	ec := rules.EdgeContext{Relation: "nsubj", GovernorPos: 1, DependentPos: 0}
	from := rules.FromContext{RootPosition: 1, RootText: "runs"}

	cases := []struct {
		rule rules.Rule
		name string
		cat  rules.Category
	}{
		{rules.A1(), "a1", rules.CategoryPredicateRoot},
		{rules.A2(), "a2", rules.CategoryPredicateRoot},
		{rules.B(), "b", rules.CategoryPredicateRoot},
		{rules.C(ec), "c", rules.CategoryPredicateRoot},
		{rules.D(), "d", rules.CategoryPredicateRoot},
		{rules.E(), "e", rules.CategoryPredicateRoot},
		{rules.V(), "v", rules.CategoryPredicateRoot},
		{rules.F(), "f", rules.CategoryPredicateRoot},

		{rules.G1(ec), "g1", rules.CategoryArgumentRoot},
		{rules.H1(), "h1", rules.CategoryArgumentRoot},
		{rules.H2(), "h2", rules.CategoryArgumentRoot},
		{rules.I(), "i", rules.CategoryArgumentRoot},
		{rules.J(), "j", rules.CategoryArgumentRoot},
		{rules.W1(), "w1", rules.CategoryArgumentRoot},
		{rules.W2(), "w2", rules.CategoryArgumentRoot},
		{rules.K(), "k", rules.CategoryArgumentRoot},

		{rules.L(), "l", rules.CategoryResolution},
		{rules.M(), "m", rules.CategoryResolution},
		{rules.ArgResolveRelcl(), "arg_resolve_relcl", rules.CategoryResolution},
		{rules.PredResolveRelcl(), "pred_resolve_relcl", rules.CategoryResolution},
		{rules.BorrowSubj(from), "borrow_subj", rules.CategoryResolution},
		{rules.BorrowObj(from), "borrow_obj", rules.CategoryResolution},
		{rules.CutBorrowSubj(from), "cut_borrow_subj", rules.CategoryResolution},
		{rules.CutBorrowObj(from), "cut_borrow_obj", rules.CategoryResolution},
		{rules.CutBorrowOther(from), "cut_borrow_other", rules.CategoryResolution},
		{rules.EnRelclDummyArgFilter(), "en_relcl_dummy_arg_filter", rules.CategoryResolution},
		{rules.BorrowSubjButActuallyObject(from), "borrow_subj", rules.CategoryResolution},

		{rules.N1(), "n1", rules.CategoryPhraseConstruction},
		{rules.N2(), "n2", rules.CategoryPhraseConstruction},
		{rules.N3(), "n3", rules.CategoryPhraseConstruction},
		{rules.N4(), "n4", rules.CategoryPhraseConstruction},
		{rules.N5(), "n5", rules.CategoryPhraseConstruction},
		{rules.N6(3), "n6", rules.CategoryPhraseConstruction},
		{rules.CleanArgToken(), "clean_arg_token", rules.CategoryPhraseConstruction},
		{rules.DropAppos(), "drop_appos", rules.CategoryPhraseConstruction},
		{rules.DropUnknown(), "drop_unknown", rules.CategoryPhraseConstruction},
		{rules.DropCc(), "drop_cc", rules.CategoryPhraseConstruction},
		{rules.DropConj(), "drop_conj", rules.CategoryPhraseConstruction},
		{rules.PredicateHas(), "predicate_has", rules.CategoryPhraseConstruction},
		{rules.SpecialArgDropDirectDep(), "special_arg_drop_direct_dep", rules.CategoryPhraseConstruction},
		{rules.MoveCaseTokenToPred(3), "move_case_token_to_pred", rules.CategoryPhraseConstruction},

		{rules.PredConjBorrowAuxNeg(from, "not"), "pred_conj_borrow_aux_neg", rules.CategoryConjunction},
		{rules.PredConjBorrowTokensXcomp(from, "firing"), "pred_conj_borrow_tokens_xcomp", rules.CategoryConjunction},

		{rules.P1(), "p1", rules.CategorySimplification},
		{rules.Q(), "q", rules.CategorySimplification},
		{rules.R(), "r", rules.CategorySimplification},
		{rules.U(), "u", rules.CategorySimplification},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.rule.Name())
			assert.Equal(t, tc.name, tc.rule.String())
			assert.Equal(t, tc.cat, tc.rule.Category())
		})
	}
}

func TestEqualIgnoresContext(t *testing.T) {
	ec1 := rules.EdgeContext{Relation: "nsubj", GovernorPos: 1, DependentPos: 0}
	ec2 := rules.EdgeContext{Relation: "dobj", GovernorPos: 5, DependentPos: 9}
	assert.True(t, rules.Equal(rules.C(ec1), rules.C(ec2)))

	from1 := rules.FromContext{RootPosition: 1, RootText: "runs"}
	from2 := rules.FromContext{RootPosition: 99, RootText: "jumped"}
	assert.True(t, rules.Equal(rules.BorrowSubj(from1), rules.BorrowSubj(from2)))

	assert.False(t, rules.Equal(rules.BorrowSubj(from1), rules.BorrowObj(from1)))
}

func TestEqualNilHandling(t *testing.T) {
	assert.True(t, rules.Equal(nil, nil))
	assert.False(t, rules.Equal(rules.A1(), nil))
	assert.False(t, rules.Equal(nil, rules.A1()))
}

func TestHas(t *testing.T) {
	list := []rules.Rule{rules.N1(), rules.N2(), rules.U()}
	assert.True(t, rules.Has(list, rules.N2()))
	assert.False(t, rules.Has(list, rules.N4()))
	assert.False(t, rules.Has(nil, rules.N1()))
}

// BorrowSubjButActuallyObject renders with the same "borrow_subj" name
// as a genuine subject borrow, but is reported distinctly by
// BorrowedAsSubjectLabelButObject - the mislabeled from/for advcl case.
func TestBorrowedAsSubjectLabelButObject(t *testing.T) {
	from := rules.FromContext{RootPosition: 2, RootText: "left"}
	mislabeled := rules.BorrowSubjButActuallyObject(from)
	genuine := rules.BorrowSubj(from)

	assert.Equal(t, "borrow_subj", mislabeled.Name())
	assert.True(t, rules.Equal(mislabeled, genuine), "renders identically to a genuine subject borrow")

	assert.True(t, rules.BorrowedAsSubjectLabelButObject(mislabeled))
	assert.False(t, rules.BorrowedAsSubjectLabelButObject(genuine))
}

func TestCategoryString(t *testing.T) {
	cases := map[rules.Category]string{
		rules.CategoryPredicateRoot:       "predicate_root",
		rules.CategoryArgumentRoot:        "argument_root",
		rules.CategoryResolution:          "resolution",
		rules.CategoryPhraseConstruction:  "phrase_construction",
		rules.CategoryConjunction:         "conjunction",
		rules.CategorySimplification:      "simplification",
		rules.Category(99):                "unknown",
	}
	for cat, want := range cases {
		assert.Equal(t, want, cat.String())
	}
}
