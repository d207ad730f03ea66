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

// Package ud exposes the two Universal Dependencies relation schemas
// (v1, v2) that the predpatt engine reads tokens and edges against, plus
// the POS tag vocabulary. Nothing in this package performs I/O; it is a
// pair of immutable constant tables, the same shape as
// record.UDDeprelMapping / record.UDPoSMapping in the teacher repo, but
// keyed on relation strings rather than corpus-compact byte codes since
// the engine never persists a parse to disk.
package ud

import "github.com/czcorpus/cnc-gokit/collections"

// POS tags, per http://universaldependencies.org/u/pos/index.html.
const (
	ADJ   = "ADJ"
	ADV   = "ADV"
	INTJ  = "INTJ"
	NOUN  = "NOUN"
	PROPN = "PROPN"
	VERB  = "VERB"
	ADP   = "ADP"
	AUX   = "AUX"
	CCONJ = "CCONJ"
	DET   = "DET"
	NUM   = "NUM"
	PART  = "PART"
	PRON  = "PRON"
	SCONJ = "SCONJ"
	PUNCT = "PUNCT"
	SYM   = "SYM"
	X     = "X"
)

// Version identifies which UD relation spelling a Schema implements.
type Version string

const (
	V1 Version = "1.0"
	V2 Version = "2.0"
)

// Schema is a fixed table of relation-name constants plus the named
// relation sets the engine's rules match against. Both Schema
// implementations below are pure data - package-level vars, never
// mutated after init.
type Schema struct {
	Version Version

	Nsubj     string
	Nsubjpass string
	Csubj     string
	Csubjpass string
	Dobj      string
	Iobj      string
	Cop       string
	Aux       string
	Auxpass   string
	Neg       string
	Amod      string
	Advmod    string
	Nmod      string
	NmodPoss  string
	NmodTmod  string
	NmodNpmod string
	Obl       string
	OblNpmod  string
	Appos     string
	Cc        string
	Conj      string
	CcPreconj string
	Mark      string
	Case      string
	Fixed     string
	Parataxis string
	Punct     string
	Ccomp     string
	Xcomp     string
	Advcl     string
	Acl       string
	AclRelcl  string
	Dep       string

	// Named relation sets, per spec.md §4.1.
	SUBJ                  *collections.Set[string]
	OBJ                   *collections.Set[string]
	NMODS                 *collections.Set[string]
	ADJLikeMods           *collections.Set[string]
	ARGLike               *collections.Set[string]
	TRIVIALS              *collections.Set[string]
	PredDepsToDrop        *collections.Set[string]
	SpecialArgDepsToDrop  *collections.Set[string]
	HardToFindArgs        *collections.Set[string]
}

// V1Schema is the Universal Dependencies v1.0 relation table: nsubjpass,
// dobj, and obl-as-nmod are the spellings that distinguish it from V2.
var V1Schema = buildV1()

// V2Schema is the Universal Dependencies v2.0 relation table: nsubj:pass,
// obj, aux:pass, csubj:pass, and a separate obl relation.
var V2Schema = buildV2()

func buildV1() *Schema {
	s := &Schema{
		Version:   V1,
		Nsubj:     "nsubj",
		Nsubjpass: "nsubjpass",
		Csubj:     "csubj",
		Csubjpass: "csubjpass",
		Dobj:      "dobj",
		Iobj:      "iobj",
		Cop:       "cop",
		Aux:       "aux",
		Auxpass:   "auxpass",
		Neg:       "neg",
		Amod:      "amod",
		Advmod:    "advmod",
		Nmod:      "nmod",
		NmodPoss:  "nmod:poss",
		NmodTmod:  "nmod:tmod",
		NmodNpmod: "nmod:npmod",
		Obl:       "nmod", // v1 has no separate obl; it aliases nmod
		OblNpmod:  "nmod:npmod",
		Appos:     "appos",
		Cc:        "cc",
		Conj:      "conj",
		CcPreconj: "cc:preconj",
		Mark:      "mark",
		Case:      "case",
		Fixed:     "fixed",
		Parataxis: "parataxis",
		Punct:     "punct",
		Ccomp:     "ccomp",
		Xcomp:     "xcomp",
		Advcl:     "advcl",
		Acl:       "acl",
		AclRelcl:  "acl:relcl",
		Dep:       "dep",
	}
	populateSets(s)
	return s
}

func buildV2() *Schema {
	s := &Schema{
		Version:   V2,
		Nsubj:     "nsubj",
		Nsubjpass: "nsubj:pass",
		Csubj:     "csubj",
		Csubjpass: "csubj:pass",
		Dobj:      "obj",
		Iobj:      "iobj",
		Cop:       "cop",
		Aux:       "aux",
		Auxpass:   "aux:pass",
		Neg:       "neg",
		Amod:      "amod",
		Advmod:    "advmod",
		Nmod:      "nmod",
		NmodPoss:  "nmod:poss",
		NmodTmod:  "nmod:tmod",
		NmodNpmod: "nmod:npmod",
		Obl:       "obl",
		OblNpmod:  "obl:npmod",
		Appos:     "appos",
		Cc:        "cc",
		Conj:      "conj",
		CcPreconj: "cc:preconj",
		Mark:      "mark",
		Case:      "case",
		Fixed:     "fixed",
		Parataxis: "parataxis",
		Punct:     "punct",
		Ccomp:     "ccomp",
		Xcomp:     "xcomp",
		Advcl:     "advcl",
		Acl:       "acl",
		AclRelcl:  "acl:relcl",
		Dep:       "dep",
	}
	populateSets(s)
	return s
}

func populateSets(s *Schema) {
	s.SUBJ = collections.NewSet(s.Nsubj, s.Csubj, s.Nsubjpass, s.Csubjpass)
	s.OBJ = collections.NewSet(s.Dobj, s.Iobj)
	s.NMODS = collections.NewSet(s.Nmod, s.Obl, s.NmodNpmod, s.NmodTmod)
	s.ADJLikeMods = collections.NewSet(s.Amod, s.Appos, s.Acl, s.AclRelcl)
	s.ARGLike = collections.NewSet(
		s.Nmod, s.Obl, s.NmodNpmod, s.NmodTmod,
		s.Nsubj, s.Csubj, s.Csubjpass, s.Dobj, s.Iobj,
	)
	s.TRIVIALS = collections.NewSet(s.Mark, s.Cc, s.Punct)
	s.PredDepsToDrop = collections.NewSet(
		s.Ccomp, s.Csubj, s.Advcl, s.Acl, s.AclRelcl,
		s.NmodTmod, s.Parataxis, s.Appos, s.Dep,
	)
	s.SpecialArgDepsToDrop = collections.NewSet(
		s.Nsubj, s.Dobj, s.Iobj, s.Csubj, s.Csubjpass, s.Neg,
		s.Aux, s.Advcl, s.Auxpass, s.Ccomp, s.Cop, s.Mark, s.Fixed,
		s.Parataxis,
	)
	s.HardToFindArgs = collections.NewSet(s.Amod, s.Dep, s.Conj, s.Acl, s.AclRelcl, s.Advcl)
}

// ForVersion resolves the schema table for a version string, reporting
// UnsupportedSchema (per spec.md §7) for anything other than "1.0"/"2.0".
// The empty string resolves to the v1 table.
func ForVersion(v Version) (*Schema, error) {
	switch v {
	case V1, "":
		return V1Schema, nil
	case V2:
		return V2Schema, nil
	default:
		return nil, &UnsupportedSchemaError{Version: v}
	}
}

// UnsupportedSchemaError is returned by ForVersion (and so by
// predpatt.NewParse) for a UD version this package has no table for.
type UnsupportedSchemaError struct {
	Version Version
}

func (e *UnsupportedSchemaError) Error() string {
	return "unsupported UD schema version: " + string(e.Version)
}

// HasRelationPrefix reports whether rel is exactly base or a subtype of
// it (e.g. "nmod:poss" has prefix "nmod"). Several rules in spec.md match
// "relation starts with nmod" rather than relation-set membership.
func HasRelationPrefix(rel, base string) bool {
	if rel == base {
		return true
	}
	if len(rel) <= len(base) {
		return false
	}
	return rel[:len(base)] == base && rel[len(base)] == ':'
}
