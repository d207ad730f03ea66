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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/rs/zerolog/log"

	"github.com/lingua-ud/predpatt/corpus"
	"github.com/lingua-ud/predpatt/linearize"
	"github.com/lingua-ud/predpatt/predpatt"
	"github.com/lingua-ud/predpatt/rulestats"
	"github.com/lingua-ud/predpatt/store"
	"github.com/lingua-ud/predpatt/ud"
)

func usage() {
	fmt.Fprintf(os.Stderr, "predpatt - extract predicate-argument tuples from a UD-annotated corpus\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n  %s <command> [options] vert_path\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  extract   print linearized (or pretty-printed) extractions for each sentence\n")
	fmt.Fprintf(os.Stderr, "  stats     tally rule-provenance frequencies across the corpus\n")
	fmt.Fprintf(os.Stderr, "  verify    check the linearize/ParseFlat round trip holds for every sentence\n")
}

// registerConfigFlags wires predpatt.Config's functional options onto
// fs the way mkscolldb wires storage.Profile's fields onto its own
// flag.FlagSet - one flag per option, composed after Parse rather than
// applied eagerly, so a later -preset can still be overridden by an
// explicit flag appearing after it on the command line. The returned
// schema accessor must also be applied to the corpus.Profile that reads
// the input file - Config.Schema only tells the engine which relation
// table to match against, it has no say over which table the parse
// itself was built with.
func registerConfigFlags(fs *flag.FlagSet) (cfgFn func() predpatt.Config, schemaFn func() ud.Version) {
	preset := fs.String("preset", "", "apply a named preset first (all, cut, simple, norelcl)")
	schema := fs.String("schema", "v1", "UD relation schema version of both the input corpus and the engine (v1 or v2)")
	resolveRelcl := fs.Bool("resolve-relcl", false, "resolve relative clauses")
	noBorrowRelcl := fs.Bool("no-borrow-arg-for-relcl", false, "disable argument borrowing during relative clause resolution")
	resolveAppos := fs.Bool("resolve-appos", false, "resolve appositives")
	resolveAmod := fs.Bool("resolve-amod", false, "resolve adjectival modifiers")
	resolvePoss := fs.Bool("resolve-poss", false, "resolve possessives")
	resolveConj := fs.Bool("resolve-conj", false, "resolve conjunctions")
	cut := fs.Bool("cut", false, "cut mode: truncate argument borrowing at the nearest predicate ancestor")
	simple := fs.Bool("simple", false, "simple mode: keep only directly dependent arguments")
	noStrip := fs.Bool("no-strip", false, "disable trivial-predicate/argument stripping")
	bigArgs := fs.Bool("big-args", false, "assemble maximal argument phrases")

	schemaFn = func() ud.Version {
		if *schema == "v2" {
			return ud.V2
		}
		return ud.V1
	}

	cfgFn = func() predpatt.Config {
		var opts []func(*predpatt.Config)
		if *preset != "" {
			opts = append(opts, predpatt.WithPreset(predpatt.Preset(*preset)))
		}
		opts = append(opts, predpatt.WithSchema(schemaFn()))
		if *resolveRelcl {
			opts = append(opts, predpatt.WithResolveRelcl())
		}
		if *noBorrowRelcl {
			opts = append(opts, predpatt.WithoutBorrowArgForRelcl())
		}
		if *resolveAppos {
			opts = append(opts, predpatt.WithResolveAppos())
		}
		if *resolveAmod {
			opts = append(opts, predpatt.WithResolveAmod())
		}
		if *resolvePoss {
			opts = append(opts, predpatt.WithResolvePoss())
		}
		if *resolveConj {
			opts = append(opts, predpatt.WithResolveConj())
		}
		if *cut {
			opts = append(opts, predpatt.WithCut())
		}
		if *simple {
			opts = append(opts, predpatt.WithSimple())
		}
		if *noStrip {
			opts = append(opts, predpatt.WithoutStrip())
		}
		if *bigArgs {
			opts = append(opts, predpatt.WithBigArgs())
		}
		return predpatt.NewConfig(opts...)
	}
	return cfgFn, schemaFn
}

// profileForSchema returns corpus.DefaultProfile() with its Schema field
// overridden by the -schema flag, so the reader actually builds each
// Parse under the UD version the engine is configured to match.
func profileForSchema(schemaFn func() ud.Version) corpus.Profile {
	profile := corpus.DefaultProfile()
	profile.Schema = schemaFn()
	return profile
}

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "-h", "-help", "--help":
		usage()
		return
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ", err)
		os.Exit(1)
	}
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	cfgFn, schemaFn := registerConfigFlags(fs)
	pretty := fs.Bool("pretty", false, "pretty-print instead of emitting the flat-string form")
	dbPath := fs.String("db", "", "optional badger store path to persist each sentence's result")
	logLevel := fs.String("log-level", "info", "set log level (debug, info, warn, error)")
	fs.Parse(args)

	logging.SetupLogging(logging.LoggingConf{Level: logging.LogLevel(*logLevel)})

	var db *store.DB
	if *dbPath != "" {
		var err error
		db, err = store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := cfgFn()
	sentID := 0
	handler := func(parse *predpatt.Parse, buildErr error) error {
		if buildErr != nil {
			log.Warn().Err(buildErr).Msg("skipping sentence with malformed parse")
			return nil
		}
		sentID++

		eng, err := predpatt.New(parse, cfg)
		if err != nil {
			log.Error().Err(err).Int("sentenceId", sentID).Msg("extraction failed")
			return nil
		}

		flat := linearize.Linearize(eng.Instances, parse)
		if *pretty {
			fmt.Print(linearize.PrettyPrint(eng.Instances, parse))
		} else {
			fmt.Println(flat)
		}

		if db != nil {
			if err := db.Put(store.Record{SentenceID: sentID, Flat: flat, Rules: collectRuleNames(eng.Instances)}); err != nil {
				return fmt.Errorf("failed to persist sentence %d: %w", sentID, err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	reader := corpus.NewReader(profileForSchema(schemaFn), handler)
	return reader.ReadFile(ctx, fs.Arg(0))
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cfgFn, schemaFn := registerConfigFlags(fs)
	minCount := fs.Int("min-count", 1, "omit rules firing fewer than this many times")
	presetFlag := fs.String("report-preset", "all", "report preset (all, resolution-only)")
	logLevel := fs.String("log-level", "info", "set log level (debug, info, warn, error)")
	fs.Parse(args)

	logging.SetupLogging(logging.LoggingConf{Level: logging.LogLevel(*logLevel)})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := cfgFn()
	calc := rulestats.New()
	handler := func(parse *predpatt.Parse, buildErr error) error {
		if buildErr != nil {
			log.Warn().Err(buildErr).Msg("skipping sentence with malformed parse")
			return nil
		}
		eng, err := predpatt.New(parse, cfg)
		if err != nil {
			log.Error().Err(err).Msg("extraction failed")
			return nil
		}
		calc.Add(eng.Instances)
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	reader := corpus.NewReader(profileForSchema(schemaFn), handler)
	if err := reader.ReadFile(ctx, fs.Arg(0)); err != nil {
		return err
	}

	counts := calc.Report(rulestats.WithMinCount(*minCount), rulestats.WithPreset(rulestats.Preset(*presetFlag)))
	printRuleCounts(counts)
	return nil
}

func printRuleCounts(counts []rulestats.Count) {
	if len(counts) == 0 {
		fmt.Println("-- NO RESULT --")
		return
	}
	headerFmt := color.New(color.FgGreen).SprintfFunc()
	columnFmt := color.New(color.FgHiMagenta).SprintfFunc()

	tbl := table.New("rank", "rule", "category", "frequency")
	tbl.
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithHeaderSeparatorRow('═')
	for _, c := range counts {
		tbl.AddRow(c.Rank, c.RuleName, c.Category, c.Freq)
	}
	tbl.Print()
}

func collectRuleNames(instances []*predpatt.Predicate) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(p *predpatt.Predicate)
	walk = func(p *predpatt.Predicate) {
		for _, r := range p.Rules {
			if !seen[r.Name()] {
				seen[r.Name()] = true
				names = append(names, r.Name())
			}
		}
		for _, a := range p.Arguments {
			for _, r := range a.Rules {
				if !seen[r.Name()] {
					seen[r.Name()] = true
					names = append(names, r.Name())
				}
			}
		}
		for _, c := range p.Children {
			walk(c)
		}
	}
	for _, p := range instances {
		walk(p)
	}
	return names
}

// runVerify implements the corpus-level differential self-check:
// Linearize a sentence's extraction, parse that flat text back with
// ParseFlat, and confirm re-emitting it (Reemit) reproduces the exact
// same flat string - the round-trip property spec.md §8.6 requires.
func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	cfgFn, schemaFn := registerConfigFlags(fs)
	logLevel := fs.String("log-level", "info", "set log level (debug, info, warn, error)")
	fs.Parse(args)

	logging.SetupLogging(logging.LoggingConf{Level: logging.LogLevel(*logLevel)})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := cfgFn()
	sentID := 0
	mismatches := 0
	handler := func(parse *predpatt.Parse, buildErr error) error {
		if buildErr != nil {
			log.Warn().Err(buildErr).Msg("skipping sentence with malformed parse")
			return nil
		}
		sentID++

		eng, err := predpatt.New(parse, cfg)
		if err != nil {
			log.Error().Err(err).Int("sentenceId", sentID).Msg("extraction failed")
			return nil
		}
		if len(eng.Instances) == 0 {
			return nil
		}

		flat := linearize.Linearize(eng.Instances, parse)
		reparsed, err := linearize.ParseFlat(flat)
		if err != nil {
			mismatches++
			log.Error().Err(err).Int("sentenceId", sentID).Msg("round trip failed to parse")
			return nil
		}
		reflat := linearize.Reemit(reparsed)
		if reflat != flat {
			mismatches++
			log.Error().
				Int("sentenceId", sentID).
				Str("original", flat).
				Str("reemitted", reflat).
				Msg("round trip mismatch")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	reader := corpus.NewReader(profileForSchema(schemaFn), handler)
	if err := reader.ReadFile(ctx, fs.Arg(0)); err != nil {
		return err
	}

	fmt.Printf("checked %d sentences, %d round-trip mismatches\n", sentID, mismatches)
	if mismatches > 0 {
		return fmt.Errorf("verify: %d sentences failed the round-trip check", mismatches)
	}
	return nil
}
