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

import "github.com/lingua-ud/predpatt/ud"

// Config is the flat option record from spec.md §6, built with
// functional options the way scoll.CalculationOptions is built in the
// teacher repo: each With* is a func(*Config) applied in order, so
// later options win over earlier ones and presets can be composed with
// explicit overrides.
type Config struct {
	// Schema must name the same UD version the Parse passed to New was
	// built under - New rejects a mismatch (SchemaMismatchError) rather
	// than silently matching relations against the wrong table.
	Schema ud.Version

	ResolveRelcl      bool
	BorrowArgForRelcl bool
	ResolveAppos      bool
	ResolveAmod       bool
	ResolvePoss       bool
	ResolveConj       bool
	Cut               bool
	Simple            bool
	Strip             bool
	BigArgs           bool
}

// NewConfig builds a Config from zero or more options, starting from
// the spec.md-documented defaults (schema v1, strip on,
// BorrowArgForRelcl on, everything else off).
func NewConfig(opts ...func(*Config)) Config {
	c := Config{
		Schema:            ud.V1,
		BorrowArgForRelcl: true,
		Strip:             true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSchema sets which UD relation table the engine matches against.
// It must agree with the schema version the target Parse was built
// under (predpatt.NewParse's version argument) - New returns a
// SchemaMismatchError otherwise.
func WithSchema(v ud.Version) func(*Config) {
	return func(c *Config) { c.Schema = v }
}

func WithResolveRelcl() func(*Config) {
	return func(c *Config) { c.ResolveRelcl = true }
}

func WithoutBorrowArgForRelcl() func(*Config) {
	return func(c *Config) { c.BorrowArgForRelcl = false }
}

func WithResolveAppos() func(*Config) {
	return func(c *Config) { c.ResolveAppos = true }
}

func WithResolveAmod() func(*Config) {
	return func(c *Config) { c.ResolveAmod = true }
}

func WithResolvePoss() func(*Config) {
	return func(c *Config) { c.ResolvePoss = true }
}

func WithResolveConj() func(*Config) {
	return func(c *Config) { c.ResolveConj = true }
}

func WithCut() func(*Config) {
	return func(c *Config) { c.Cut = true }
}

func WithSimple() func(*Config) {
	return func(c *Config) { c.Simple = true }
}

func WithoutStrip() func(*Config) {
	return func(c *Config) { c.Strip = false }
}

func WithBigArgs() func(*Config) {
	return func(c *Config) { c.BigArgs = true }
}

// Preset names the four regression presets spec.md §8 benchmarks
// determinism against.
type Preset string

const (
	PresetAll      Preset = "all"
	PresetCut      Preset = "cut"
	PresetSimple   Preset = "simple"
	PresetNoRelcl  Preset = "norelcl"
)

// WithPreset sets several derived flags atomically for one of the four
// named presets, mirroring scoll.WithPredefinedSearch's all-at-once
// option composition. Apply further With* options after it to override
// individual fields.
func WithPreset(p Preset) func(*Config) {
	return func(c *Config) {
		switch p {
		case PresetAll:
			c.ResolveRelcl = true
			c.ResolveAppos = true
			c.ResolveAmod = true
			c.ResolvePoss = true
			c.ResolveConj = true
		case PresetCut:
			c.ResolveRelcl = true
			c.ResolveAppos = true
			c.ResolveAmod = true
			c.ResolvePoss = true
			c.ResolveConj = true
			c.Cut = true
		case PresetSimple:
			c.Simple = true
		case PresetNoRelcl:
			c.ResolveAppos = true
			c.ResolveAmod = true
			c.ResolvePoss = true
			c.ResolveConj = true
			c.ResolveRelcl = false
		}
	}
}
