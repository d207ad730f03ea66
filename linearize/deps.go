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

// Package linearize implements the two output formats spec.md §6
// describes on top of an extraction result: the tab-indented
// pretty-printer and the round-trippable flat-string encoding, plus
// the embedded-predicate nesting pass (BuildPredicateDependencies) the
// flat form's recursive SOMETHING:a= marker depends on.
package linearize

import "github.com/lingua-ud/predpatt/predpatt"

// BuildPredicateDependencies nests a predicate as a Child of another
// whenever it fills one of that predicate's clausal argument slots,
// mirroring decomp's build_pred_dep: a ccomp/csubj/csubjpass/xcomp
// argument whose root is itself another identified predicate's root is
// not an independent top-level clause for linearization purposes - it
// is rendered recursively, in place, through the SOMETHING:a= marker.
// The returned slice holds only the top-level (non-embedded)
// predicates; embedded ones are reachable through their parent's
// Children field.
func BuildPredicateDependencies(instances []*predpatt.Predicate, parse *predpatt.Parse) []*predpatt.Predicate {
	byRoot := make(map[int]*predpatt.Predicate, len(instances))
	for _, p := range instances {
		byRoot[p.Root.Position] = p
	}

	embedded := make(map[int]bool)
	for _, p := range instances {
		for _, arg := range p.Arguments {
			if !arg.IsClausal(parse) {
				continue
			}
			child, ok := byRoot[arg.Root.Position]
			if !ok || child == p {
				continue
			}
			p.Children = append(p.Children, child)
			embedded[child.Position()] = true
		}
	}

	top := make([]*predpatt.Predicate, 0, len(instances))
	for _, p := range instances {
		if !embedded[p.Position()] {
			top = append(top, p)
		}
	}
	return top
}

// findChild returns the Child of p rooted at pos, or nil.
func findChild(p *predpatt.Predicate, pos int) *predpatt.Predicate {
	for _, c := range p.Children {
		if c.Root.Position == pos {
			return c
		}
	}
	return nil
}
