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

// Package corpus turns a CoNLL-style vertical file - one token per
// line, columns addressed by position, sentences delimited by an <s>
// structure - into predpatt.Parse values, the way dataimport.Searcher
// turns the same kind of file into word2vec/collocation branches in
// the teacher repo. Reading is driven by vertigo, exactly as there.
package corpus

import (
	"context"
	"fmt"

	"github.com/lingua-ud/predpatt/predpatt"
	"github.com/lingua-ud/predpatt/ud"
	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v6"
)

// Profile names the vertical file's column layout, mirroring
// storage.Profile in the teacher repo. Indices are vertigo positional
// attribute indices: 0 addresses the structural word form itself
// (vertigo.Token.Word), and N>0 addresses vertigo.Token.Attrs[N-1] -
// PosAttrByIndex(N) performs that offset internally, so callers always
// pass the raw profile index.
type Profile struct {
	Name string

	LemmaIdx  int
	PosIdx    int
	ParentIdx int
	DeprelIdx int

	Schema ud.Version
}

// DefaultProfile matches the column layout of the Universal Dependencies
// CoNLL-U-derived verticals this package was written against.
func DefaultProfile() Profile {
	return Profile{
		Name:      "ud-default",
		LemmaIdx:  2,
		PosIdx:    4,
		DeprelIdx: 7,
		ParentIdx: 6,
		Schema:    ud.V2,
	}
}

// SentenceHandler is called once per complete sentence. A non-nil err
// means the sentence's dependency structure was rejected (malformed
// parse or a cycle) and parse is nil; the handler decides whether that
// is fatal for the whole run by returning a non-nil error itself.
type SentenceHandler func(parse *predpatt.Parse, err error) error

// Reader drives vertigo.ParseVerticalFile over one or more files,
// assembling each <s>-delimited span of tokens into a predpatt.Parse
// and invoking a SentenceHandler for it.
type Reader struct {
	profile Profile
	handler SentenceHandler

	pending      []*vertigo.Token
	sentenceOpen bool
}

// NewReader creates a Reader that reports each sentence it assembles to
// handler.
func NewReader(profile Profile, handler SentenceHandler) *Reader {
	return &Reader{profile: profile, handler: handler}
}

// ProcToken implements vertigo's token-processor interface.
func (r *Reader) ProcToken(tk *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	if r.sentenceOpen {
		r.pending = append(r.pending, tk)
	}
	return nil
}

// ProcStruct implements vertigo's structure-open processor interface.
func (r *Reader) ProcStruct(st *vertigo.Structure, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name == "s" {
		r.pending = r.pending[:0]
		r.sentenceOpen = true
	}
	return nil
}

// ProcStructClose implements vertigo's structure-close processor
// interface; it is where a full sentence's tokens are converted and
// handed to the configured SentenceHandler.
func (r *Reader) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name != "s" || !r.sentenceOpen {
		return nil
	}
	r.sentenceOpen = false
	if len(r.pending) == 0 {
		return nil
	}
	parse, buildErr := r.buildParse(r.pending)
	return r.handler(parse, buildErr)
}

// ReadFile parses one vertical file, invoking the Reader's
// SentenceHandler for every sentence found in it.
func (r *Reader) ReadFile(ctx context.Context, path string) error {
	conf := vertigo.ParserConf{
		InputFilePath:         path,
		Encoding:              "utf-8",
		StructAttrAccumulator: "comb",
		LogProgressEachNth:    100000,
	}
	return vertigo.ParseVerticalFile(ctx, &conf, r)
}

// buildParse converts one span of vertigo tokens into a predpatt.Parse.
// Parent references are 1-based, absolute token indices as in a CoNLL-U
// HEAD column (0 means root); they are converted to the 0-based,
// governor-index-or--1 form predpatt.NewParse expects.
func (r *Reader) buildParse(sent []*vertigo.Token) (*predpatt.Parse, error) {
	tokens := make([]predpatt.TokenSpec, len(sent))
	edges := make([]predpatt.EdgeSpec, 0, len(sent))

	for i, tk := range sent {
		tokens[i] = predpatt.TokenSpec{Text: tk.Word, Tag: tk.PosAttrByIndex(r.profile.PosIdx)}

		rel := tk.PosAttrByIndex(r.profile.DeprelIdx)
		parentStr := tk.PosAttrByIndex(r.profile.ParentIdx)
		govPos, err := parentOffset(parentStr, i)
		if err != nil {
			return nil, fmt.Errorf("corpus: token %d: %w", i, err)
		}
		if govPos == i {
			log.Debug().Int("idx", i).Str("word", tk.Word).Msg("token claims itself as head, treating as root")
			continue
		}
		edges = append(edges, predpatt.EdgeSpec{Relation: rel, GovPosition: govPos, DepPosition: i})
	}

	if err := checkAcyclic(tokens, edges); err != nil {
		return nil, err
	}

	return predpatt.NewParse(tokens, edges, r.profile.Schema)
}

// parentOffset turns a CoNLL-U-style HEAD value (1-based, 0 = root)
// attached to the token at position i into predpatt's absolute,
// 0-based-or--1 governor index.
func parentOffset(raw string, i int) (int, error) {
	if raw == "" || raw == "0" {
		return -1, nil
	}
	var head int
	if _, err := fmt.Sscanf(raw, "%d", &head); err != nil {
		return -1, fmt.Errorf("malformed head column %q: %w", raw, err)
	}
	if head <= 0 {
		return -1, nil
	}
	return head - 1, nil
}

// checkAcyclic walks every token's governor chain to the root,
// rejecting the sentence if any chain revisits a token - the same
// defensive pass findPathsToRoot's cycle detection performs in the
// teacher repo, reduced to a yes/no check since predpatt itself has no
// use for the teacher's leaf-to-root branch extraction.
func checkAcyclic(tokens []predpatt.TokenSpec, edges []predpatt.EdgeSpec) error {
	gov := make([]int, len(tokens))
	for i := range gov {
		gov[i] = -1
	}
	for _, e := range edges {
		gov[e.DepPosition] = e.GovPosition
	}
	for start := range tokens {
		seen := make(map[int]bool, len(tokens))
		cur := start
		for cur != -1 {
			if seen[cur] {
				return fmt.Errorf("corpus: dependency cycle detected starting at token %d", start)
			}
			seen[cur] = true
			cur = gov[cur]
		}
	}
	return nil
}
