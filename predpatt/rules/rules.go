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

// Package rules implements the extraction rule taxonomy: a purely
// nominal provenance marker recorded every time the engine makes a
// decision, so the caller can justify or filter an extraction after the
// fact. Rule is a tagged variant rather than a dynamically-dispatched
// type as in the reference implementation (see the "Dynamic rule
// dispatch" design note) - the variant carries whatever context it
// needs for rendering, and two rules compare equal iff they are the
// same variant; the context never participates in equality.
package rules

import "fmt"

// Category groups rules by the phase of the pipeline that produces
// them. It exists purely for documentation/introspection; the engine
// never branches on it.
type Category int

const (
	CategoryPredicateRoot Category = iota
	CategoryArgumentRoot
	CategoryResolution
	CategoryPhraseConstruction
	CategoryConjunction
	CategorySimplification
)

func (c Category) String() string {
	switch c {
	case CategoryPredicateRoot:
		return "predicate_root"
	case CategoryArgumentRoot:
		return "argument_root"
	case CategoryResolution:
		return "resolution"
	case CategoryPhraseConstruction:
		return "phrase_construction"
	case CategoryConjunction:
		return "conjunction"
	case CategorySimplification:
		return "simplification"
	default:
		return "unknown"
	}
}

// Rule is one entry in a Predicate's or Argument's provenance list.
// Name renders the fixed lowercase spelling (spec.md §4.2) under which
// rules are tallied by rulestats and stored in store.Record; the
// linearized and pretty-printed forms do not include rule names.
// Equality is variant-only.
type Rule interface {
	Name() string
	Category() Category
	fmt.Stringer
}

// base is embedded by every concrete rule to give it a String() that
// matches Name(), and to make the variant comparable by name+category
// without reflecting over context fields.
type base struct {
	name string
	cat  Category
}

func (b base) Name() string      { return b.name }
func (b base) Category() Category { return b.cat }
func (b base) String() string    { return b.name }

func (b base) equals(other Rule) bool {
	return other != nil && other.Name() == b.name && other.Category() == b.cat
}

// Equal reports whether two rules are the same variant, ignoring any
// context they carry - the contract spec.md §"RuleProvenance" requires.
func Equal(a, b Rule) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name() && a.Category() == b.Category()
}

// --- Predicate-root rules --------------------------------------------------

type a1Rule struct{ base }
type a2Rule struct{ base }
type bRule struct{ base }
type cRule struct {
	base
	Edge EdgeContext
}
type dRule struct{ base }
type eRule struct{ base }
type vRule struct{ base }
type fRule struct{ base }

// EdgeContext is the minimal display context a rule needs about the edge
// that triggered it - the relation label and the two endpoints'
// positions. Kept free of a dependency on the predpatt package to avoid
// an import cycle (rules is imported by predpatt, not the reverse).
type EdgeContext struct {
	Relation       string
	GovernorPos    int
	DependentPos   int
}

func A1() Rule { return a1Rule{base{"a1", CategoryPredicateRoot}} }
func A2() Rule { return a2Rule{base{"a2", CategoryPredicateRoot}} }
func B() Rule  { return bRule{base{"b", CategoryPredicateRoot}} }
func C(e EdgeContext) Rule {
	return cRule{base{"c", CategoryPredicateRoot}, e}
}
func D() Rule { return dRule{base{"d", CategoryPredicateRoot}} }
func E() Rule { return eRule{base{"e", CategoryPredicateRoot}} }
func V() Rule { return vRule{base{"v", CategoryPredicateRoot}} }
func F() Rule { return fRule{base{"f", CategoryPredicateRoot}} }

// --- Argument-root rules ----------------------------------------------------

type g1Rule struct {
	base
	Edge EdgeContext
}
type h1Rule struct{ base }
type h2Rule struct{ base }
type iRule struct{ base }
type jRule struct{ base }
type w1Rule struct{ base }
type w2Rule struct{ base }
type kRule struct{ base }

func G1(e EdgeContext) Rule { return g1Rule{base{"g1", CategoryArgumentRoot}, e} }
func H1() Rule              { return h1Rule{base{"h1", CategoryArgumentRoot}} }
func H2() Rule              { return h2Rule{base{"h2", CategoryArgumentRoot}} }
func I() Rule                { return iRule{base{"i", CategoryArgumentRoot}} }
func J() Rule                { return jRule{base{"j", CategoryArgumentRoot}} }
func W1() Rule               { return w1Rule{base{"w1", CategoryArgumentRoot}} }
func W2() Rule               { return w2Rule{base{"w2", CategoryArgumentRoot}} }
func K() Rule                { return kRule{base{"k", CategoryArgumentRoot}} }

// --- Resolution rules --------------------------------------------------------

type lRule struct{ base }
type mRule struct{ base }
type argResolveRelclRule struct{ base }
type predResolveRelclRule struct{ base }

// FromContext names the predicate a borrow was taken from, for display.
type FromContext struct {
	RootPosition int
	RootText     string
}

type borrowSubjRule struct {
	base
	From FromContext
}
type borrowObjRule struct {
	base
	From FromContext
}
type cutBorrowSubjRule struct {
	base
	From FromContext
}
type cutBorrowObjRule struct {
	base
	From FromContext
}
type cutBorrowOtherRule struct {
	base
	From FromContext
}
type enRelclDummyArgFilterRule struct{ base }

func L() Rule                { return lRule{base{"l", CategoryResolution}} }
func M() Rule                { return mRule{base{"m", CategoryResolution}} }
func ArgResolveRelcl() Rule  { return argResolveRelclRule{base{"arg_resolve_relcl", CategoryResolution}} }
func PredResolveRelcl() Rule { return predResolveRelclRule{base{"pred_resolve_relcl", CategoryResolution}} }
func BorrowSubj(from FromContext) Rule {
	return borrowSubjRule{base{"borrow_subj", CategoryResolution}, from}
}
func BorrowObj(from FromContext) Rule {
	return borrowObjRule{base{"borrow_obj", CategoryResolution}, from}
}
func CutBorrowSubj(from FromContext) Rule {
	return cutBorrowSubjRule{base{"cut_borrow_subj", CategoryResolution}, from}
}
func CutBorrowObj(from FromContext) Rule {
	return cutBorrowObjRule{base{"cut_borrow_obj", CategoryResolution}, from}
}
func CutBorrowOther(from FromContext) Rule {
	return cutBorrowOtherRule{base{"cut_borrow_other", CategoryResolution}, from}
}
func EnRelclDummyArgFilter() Rule {
	return enRelclDummyArgFilterRule{base{"en_relcl_dummy_arg_filter", CategoryResolution}}
}

// BorrowedAsSubjectLabelButObject reports whether a rule is the
// special from/for advcl case (spec.md §9 Open Question): the source
// tags an object-borrow with the BorrowSubj name. Downstream callers
// that care about the true grammatical role should check this rather
// than trusting the rule's name alone.
func BorrowedAsSubjectLabelButObject(r Rule) bool {
	_, ok := r.(borrowSubjObjectRule)
	return ok
}

type borrowSubjObjectRule struct {
	borrowSubjRule
}

// BorrowSubjButActuallyObject constructs the mislabeled-by-design
// from/for advcl borrow: tagged "borrow_subj" for output compatibility
// with the reference implementation, but BorrowedAsSubjectLabelButObject
// reports true for it.
func BorrowSubjButActuallyObject(from FromContext) Rule {
	return borrowSubjObjectRule{borrowSubjRule{base{"borrow_subj", CategoryResolution}, from}}
}

// --- Phrase-construction rules ----------------------------------------------

type n1Rule struct{ base }
type n2Rule struct{ base }
type n3Rule struct{ base }
type n4Rule struct{ base }
type n5Rule struct{ base }
type n6Rule struct {
	base
	CaseTokenPos int
}
type cleanArgTokenRule struct{ base }
type dropApposRule struct{ base }
type dropUnknownRule struct{ base }
type dropCcRule struct{ base }
type dropConjRule struct{ base }
type predicateHasRule struct{ base }
type specialArgDropDirectDepRule struct{ base }
type moveCaseTokenToPredRule struct {
	base
	CaseTokenPos int
}

func N1() Rule { return n1Rule{base{"n1", CategoryPhraseConstruction}} }
func N2() Rule { return n2Rule{base{"n2", CategoryPhraseConstruction}} }
func N3() Rule { return n3Rule{base{"n3", CategoryPhraseConstruction}} }
func N4() Rule { return n4Rule{base{"n4", CategoryPhraseConstruction}} }
func N5() Rule { return n5Rule{base{"n5", CategoryPhraseConstruction}} }
func N6(caseTokenPos int) Rule {
	return n6Rule{base{"n6", CategoryPhraseConstruction}, caseTokenPos}
}
func CleanArgToken() Rule { return cleanArgTokenRule{base{"clean_arg_token", CategoryPhraseConstruction}} }
func DropAppos() Rule     { return dropApposRule{base{"drop_appos", CategoryPhraseConstruction}} }
func DropUnknown() Rule   { return dropUnknownRule{base{"drop_unknown", CategoryPhraseConstruction}} }
func DropCc() Rule        { return dropCcRule{base{"drop_cc", CategoryPhraseConstruction}} }
func DropConj() Rule      { return dropConjRule{base{"drop_conj", CategoryPhraseConstruction}} }
func PredicateHas() Rule  { return predicateHasRule{base{"predicate_has", CategoryPhraseConstruction}} }
func SpecialArgDropDirectDep() Rule {
	return specialArgDropDirectDepRule{base{"special_arg_drop_direct_dep", CategoryPhraseConstruction}}
}
func MoveCaseTokenToPred(caseTokenPos int) Rule {
	return moveCaseTokenToPredRule{base{"move_case_token_to_pred", CategoryPhraseConstruction}, caseTokenPos}
}

// --- Conjunction rules -------------------------------------------------------

type predConjBorrowAuxNegRule struct {
	base
	From      FromContext
	TokenText string
}
type predConjBorrowTokensXcompRule struct {
	base
	From      FromContext
	TokenText string
}

func PredConjBorrowAuxNeg(from FromContext, tokenText string) Rule {
	return predConjBorrowAuxNegRule{base{"pred_conj_borrow_aux_neg", CategoryConjunction}, from, tokenText}
}
func PredConjBorrowTokensXcomp(from FromContext, tokenText string) Rule {
	return predConjBorrowTokensXcompRule{base{"pred_conj_borrow_tokens_xcomp", CategoryConjunction}, from, tokenText}
}

// --- Simplification / cleanup rules -----------------------------------------

type p1Rule struct{ base }
type qRule struct{ base }
type rRule struct{ base }
type uRule struct{ base }

func P1() Rule { return p1Rule{base{"p1", CategorySimplification}} }
func Q() Rule  { return qRule{base{"q", CategorySimplification}} }
func R() Rule  { return rRule{base{"r", CategorySimplification}} }
func U() Rule  { return uRule{base{"u", CategorySimplification}} }

// Has reports whether any rule in the list is the same variant as want.
func Has(list []Rule, want Rule) bool {
	for _, r := range list {
		if Equal(r, want) {
			return true
		}
	}
	return false
}
