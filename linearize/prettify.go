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

package linearize

import "strings"

// prettifyReplacer strips the flat form's brackets and suffix markers
// down to plain, human-legible text, without going through a full
// ParseFlat + PrettyPrint round trip. The predicate-as-argument markers
// are listed before the plain predicate markers since they are a
// strict superstring of them on one side (predAsArgOpen extends
// predOpen) and strings.NewReplacer always prefers the earliest
// matching pattern in its list at a given position.
var prettifyReplacer = strings.NewReplacer(
	predAsArgOpen, "(",
	predAsArgClose, ")",
	predOpen, "(",
	predClose, ")",
	argOpen, "[",
	argClose, "]",
	somethingLit, "",
	sufPredHead, "",
	sufArgHead, "",
	sufPred, "",
	sufArg, "",
)

// Prettify turns a flat-string line (or a whole Linearize output) into
// a compact single-line human-readable rendering: brackets kept as
// light punctuation, every marker suffix stripped. It does not attempt
// PrettyPrint's tab-indented, argument-placeholder form - callers that
// want that should hold onto the original instances and call
// PrettyPrint directly rather than re-deriving it from flat text.
func Prettify(flat string) string {
	lines := strings.Split(flat, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = collapseSpaces(prettifyReplacer.Replace(line))
	}
	return strings.Join(out, "\n")
}

// collapseSpaces removes the run of extra whitespace that tends to
// appear once open/close markers shrink to single characters.
func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
