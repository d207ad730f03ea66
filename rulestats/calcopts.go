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

// Package rulestats aggregates how often each extraction rule fires
// across a corpus run, the counterpart to scoll.Calculator's
// collocation-measure aggregation in the teacher repo - same
// functional-options call shape, same "accumulate per key, then sort
// and rank" structure, applied to rule provenance instead of collocate
// frequency.
package rulestats

// Preset names a predefined view over the accumulated counts, mirroring
// scoll.PredefinedSearch's role of bundling several option values
// together under one name.
type Preset string

const (
	// PresetAll reports every rule that fired at least once.
	PresetAll Preset = "all"

	// PresetResolutionOnly restricts the report to CategoryResolution
	// and CategoryConjunction rules - the borrowing/sharing machinery
	// most likely to need scrutiny when auditing a corpus run.
	PresetResolutionOnly Preset = "resolution-only"
)

// Options configures a report produced from a Calculator, the same
// functional-options shape as scoll.CalculationOptions.
type Options struct {
	MinCount int
	Preset   Preset
}

func WithMinCount(n int) func(*Options) {
	return func(o *Options) { o.MinCount = n }
}

func WithPreset(p Preset) func(*Options) {
	return func(o *Options) { o.Preset = p }
}

// NewOptions builds an Options from zero or more functional options,
// starting from MinCount 1 / PresetAll.
func NewOptions(opts ...func(*Options)) Options {
	o := Options{MinCount: 1, Preset: PresetAll}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
