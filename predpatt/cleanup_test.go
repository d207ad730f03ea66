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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-ud/predpatt/ud"
)

// Strip idempotence (spec.md §8.7): applying stripTrivial to a span a
// second time must report no further change. This is a white-box test
// of the unexported function itself, not the full pipeline - the
// pipeline strips a span a second time only when coordination expansion
// is on, so the property is exercised directly.
func TestStripTrivial_Idempotent(t *testing.T) {
	schema := ud.V1Schema
	tokens := []*Token{
		{Position: 0, Text: "that", GovRel: schema.Mark, Tag: ud.SCONJ},
		{Position: 1, Text: "dogs", GovRel: schema.Nsubj, Tag: ud.NOUN},
		{Position: 2, Text: "bark", GovRel: "root", Tag: ud.VERB},
		{Position: 3, Text: ",", GovRel: schema.Punct, Tag: ud.PUNCT},
	}

	e := &Engine{Config: NewConfig(), Schema: schema}

	first, changed := e.stripTrivial(tokens)
	require.True(t, changed, "leading mark and trailing punct should be stripped once")
	require.NotEqual(t, len(tokens), len(first))

	second, changedAgain := e.stripTrivial(first)
	assert.False(t, changedAgain)
	assert.Equal(t, first, second)
}
