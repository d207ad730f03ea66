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

package ud_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-ud/predpatt/ud"
)

func TestForVersion(t *testing.T) {
	v1, err := ud.ForVersion(ud.V1)
	require.NoError(t, err)
	assert.Same(t, ud.V1Schema, v1)

	v2, err := ud.ForVersion(ud.V2)
	require.NoError(t, err)
	assert.Same(t, ud.V2Schema, v2)

	// empty version string defaults to v1, matching the reference
	// implementation's untagged-corpus fallback.
	empty, err := ud.ForVersion("")
	require.NoError(t, err)
	assert.Same(t, ud.V1Schema, empty)

	_, err = ud.ForVersion("3.0")
	require.Error(t, err)
	var unsupported *ud.UnsupportedSchemaError
	assert.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "3.0")
}

func TestSchemaSpellings(t *testing.T) {
	assert.Equal(t, "nsubjpass", ud.V1Schema.Nsubjpass)
	assert.Equal(t, "nsubj:pass", ud.V2Schema.Nsubjpass)
	assert.Equal(t, "dobj", ud.V1Schema.Dobj)
	assert.Equal(t, "obj", ud.V2Schema.Dobj)
	assert.Equal(t, "nmod", ud.V1Schema.Obl, "v1 has no separate obl relation")
	assert.Equal(t, "obl", ud.V2Schema.Obl)
	assert.Equal(t, "auxpass", ud.V1Schema.Auxpass)
	assert.Equal(t, "aux:pass", ud.V2Schema.Auxpass)
	assert.Equal(t, "csubjpass", ud.V1Schema.Csubjpass)
	assert.Equal(t, "csubj:pass", ud.V2Schema.Csubjpass)
}

func TestHasRelationPrefix(t *testing.T) {
	tests := []struct {
		rel, base string
		want      bool
	}{
		{"nmod", "nmod", true},
		{"nmod:poss", "nmod", true},
		{"nmodifier", "nmod", false},
		{"nmod", "nmod:poss", false},
		{"acl:relcl", "acl", true},
		{"acl", "acl:relcl", false},
	}
	for _, tc := range tests {
		t.Run(tc.rel+"/"+tc.base, func(t *testing.T) {
			assert.Equal(t, tc.want, ud.HasRelationPrefix(tc.rel, tc.base))
		})
	}
}

func TestRelationSetMembership(t *testing.T) {
	for _, schema := range []*ud.Schema{ud.V1Schema, ud.V2Schema} {
		t.Run(string(schema.Version), func(t *testing.T) {
			assert.True(t, schema.SUBJ.Contains(schema.Nsubj))
			assert.True(t, schema.SUBJ.Contains(schema.Nsubjpass))
			assert.True(t, schema.SUBJ.Contains(schema.Csubj))
			assert.True(t, schema.SUBJ.Contains(schema.Csubjpass))
			assert.False(t, schema.SUBJ.Contains(schema.Dobj))

			assert.True(t, schema.OBJ.Contains(schema.Dobj))
			assert.True(t, schema.OBJ.Contains(schema.Iobj))

			assert.True(t, schema.NMODS.Contains(schema.Nmod))
			assert.True(t, schema.NMODS.Contains(schema.Obl))

			assert.True(t, schema.ADJLikeMods.Contains(schema.Amod))
			assert.True(t, schema.ADJLikeMods.Contains(schema.Appos))
			assert.True(t, schema.ADJLikeMods.Contains(schema.AclRelcl))

			assert.True(t, schema.TRIVIALS.Contains(schema.Mark))
			assert.True(t, schema.TRIVIALS.Contains(schema.Cc))
			assert.True(t, schema.TRIVIALS.Contains(schema.Punct))
			assert.False(t, schema.TRIVIALS.Contains(schema.Nsubj))

			assert.True(t, schema.HardToFindArgs.Contains(schema.Amod))
			assert.True(t, schema.HardToFindArgs.Contains(schema.Advcl))
		})
	}
}
