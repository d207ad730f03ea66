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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lingua-ud/predpatt/predpatt"
	"github.com/lingua-ud/predpatt/ud"
)

// ArgName renders the i-th (0-based) argument placeholder name spec.md
// §6 describes: ?a, ?b, ..., ?z, ?a1, ?b1, ...
func ArgName(i int) string {
	letter := rune('a' + i%26)
	suffix := i / 26
	if suffix == 0 {
		return fmt.Sprintf("?%c", letter)
	}
	return fmt.Sprintf("?%c%d", letter, suffix)
}

// PrettyPrint renders instances in the tab-indented form spec.md §6
// describes: one block per predicate, its argument lines indented a
// further level beneath it.
func PrettyPrint(instances []*predpatt.Predicate, parse *predpatt.Parse) string {
	var buf strings.Builder
	for _, p := range instances {
		buf.WriteString("\t")
		buf.WriteString(predicateTemplate(p, parse))
		buf.WriteString("\n")
		for i, arg := range p.Arguments {
			buf.WriteString("\t\t")
			buf.WriteString(argDisplayName(p, parse, arg, i))
			buf.WriteString(": ")
			buf.WriteString(arg.Phrase())
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// argDisplayName names the i-th argument's placeholder. A clausal
// argument (ccomp/csubj/csubjpass/xcomp) whose root is governed by one
// of the predicate's own tokens renders as the literal SOMETHING rather than ?x, per
// spec.md §6 - it stands in for an embedded predicate, not a simple
// nominal filler.
func argDisplayName(p *predpatt.Predicate, parse *predpatt.Parse, arg *predpatt.Argument, idx int) string {
	if p.Type == predpatt.Normal && arg.IsClausal(parse) {
		if gov := parse.Governor(arg.Root.Position); gov != nil && p.HasToken(gov) {
			return "SOMETHING"
		}
	}
	return ArgName(idx)
}

type templateItem struct {
	pos   int
	text  string
	isArg bool
}

// predicateTemplate renders one predicate's phrase with argument
// placeholders interleaved in position order, per the per-type
// templates spec.md §6 lists.
func predicateTemplate(p *predpatt.Predicate, parse *predpatt.Parse) string {
	switch p.Type {
	case predpatt.Possessive:
		return fmt.Sprintf("%s poss %s", ArgName(0), ArgName(1))
	case predpatt.Appositive, predpatt.AdjectivalModifier:
		return appositiveTemplate(p, parse)
	default:
		return normalTemplate(p, parse)
	}
}

func normalTemplate(p *predpatt.Predicate, parse *predpatt.Parse) string {
	items := make([]templateItem, 0, len(p.Tokens)+len(p.Arguments))
	for i, arg := range p.Arguments {
		items = append(items, templateItem{arg.Position(), argDisplayName(p, parse, arg, i), true})
	}
	for _, t := range p.Tokens {
		items = append(items, templateItem{t.Position, t.Text, false})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	needIsAre := p.Root.GovRel == parse.Schema.Xcomp && p.Root.Tag != ud.VERB && p.Root.Tag != ud.ADJ
	var parts []string
	insertedIsAre := false
	for _, it := range items {
		parts = append(parts, it.text)
		if needIsAre && it.isArg && !insertedIsAre {
			parts = append(parts, "is/are")
			insertedIsAre = true
		}
	}
	return strings.Join(parts, " ")
}

func appositiveTemplate(p *predpatt.Predicate, parse *predpatt.Parse) string {
	gov := parse.Governor(p.Root.Position)
	items := make([]templateItem, 0, len(p.Tokens)+len(p.Arguments))
	var pulled string
	for i, arg := range p.Arguments {
		name := argDisplayName(p, parse, arg, i)
		if gov != nil && arg.Root.Position == gov.Position {
			pulled = name
			continue
		}
		items = append(items, templateItem{arg.Position(), name, true})
	}
	for _, t := range p.Tokens {
		items = append(items, templateItem{t.Position, t.Text, false})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	parts := make([]string, 0, len(items)+2)
	if pulled != "" {
		parts = append(parts, pulled)
	}
	parts = append(parts, "is/are")
	for _, it := range items {
		parts = append(parts, it.text)
	}
	return strings.Join(parts, " ")
}
