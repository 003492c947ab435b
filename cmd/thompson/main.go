// Command thompson compiles a pattern once and matches it against every line
// of standard input, printing true or false per line.
//
// Usage:
//
//	thompson [flags] PATTERN < input.txt
//
// Exit status is 2 for a malformed pattern or bad usage, 1 for other errors.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/syntax"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("thompson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	postfix := fs.Bool("postfix", false, "print the postfix form of PATTERN and exit")
	stats := fs.Bool("stats", false, "print matching statistics to stderr")
	fuse := fs.Bool("fuse", false, "fuse concatenated NFA fragments")
	maxStates := fs.Uint64("max-states", 10000, "DFA state cache bound")
	noPrefilter := fs.Bool("no-prefilter", false, "disable the literal prefilter")
	nfaOnly := fs.Bool("nfa", false, "match with the PikeVM only, no DFA")
	dot := fs.String("dot", "", "write a Graphviz graph: nfa (and exit) or dfa (after matching)")
	outFile := fs.String("o", "-", "output file for -dot")
	verbose := fs.Bool("v", false, "print compilation details to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: thompson [flags] PATTERN < input")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *dot != "" && *dot != "nfa" && *dot != "dfa" {
		fmt.Fprintf(stderr, "-dot must be nfa or dfa, got %q\n", *dot)
		return 2
	}
	pattern := fs.Arg(0)

	if *postfix {
		tokens, err := syntax.Normalize(pattern)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		fmt.Fprintln(stdout, syntax.Postfix(tokens))
		return 0
	}

	config := thompson.DefaultConfig()
	config.FuseConcat = *fuse
	config.MaxDFAStates = uint32(min(*maxStates, math.MaxUint32)) //nolint:gosec // bounded above
	config.EnablePrefilter = !*noPrefilter
	config.EnableDFA = !*nfaOnly

	re, err := thompson.CompileWithConfig(pattern, config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		var se *thompson.SyntaxError
		if errors.As(err, &se) {
			return 2
		}
		return 1
	}

	if *verbose {
		summary, _, _ := strings.Cut(re.NFA(), "\n")
		fmt.Fprintf(stderr, "pattern %q: %s, strategy %v\n", pattern, summary, re.Strategy())
	}

	if *dot == "nfa" {
		return writeDOT(*outFile, stdout, stderr, re.WriteNFADOT)
	}

	if code := matchLines(re, stdin, stdout, stderr); code != 0 {
		return code
	}

	if *stats {
		printStats(stderr, re.Stats())
	}
	if *dot == "dfa" {
		return writeDOT(*outFile, stdout, stderr, re.WriteDFADOT)
	}
	return 0
}

// matchLines prints one result per input line.
func matchLines(re *thompson.Regex, stdin io.Reader, stdout, stderr io.Writer) int {
	out := bufio.NewWriter(stdout)
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(out, re.Match(scanner.Bytes()))
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(stderr, "write:", err)
		return 1
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, "read:", err)
		return 1
	}
	return 0
}

func printStats(w io.Writer, s thompson.Stats) {
	fmt.Fprintf(w, "searches: dfa=%d nfa=%d\n", s.DFASearches, s.NFASearches)
	fmt.Fprintf(w, "prefilter: dfa-skips=%d nfa-rejects=%d\n", s.DFA.PrefilterSkips, s.PrefilterRejects)
	fmt.Fprintf(w, "dfa: states=%d clears=%d determinized=%d memoised=%d dead-exits=%d\n",
		s.DFA.States, s.DFA.CacheClears, s.DFA.Determinized, s.DFA.MemoisedFollows, s.DFA.DeadStateExits)
	fmt.Fprintf(w, "cache: hits=%d misses=%d rotations=%d depth=%d\n",
		s.DFA.CacheHits, s.DFA.CacheMisses, s.DFA.Rotations, s.DFA.TreeDepth)
	if s.DFAFallbacks > 0 {
		fmt.Fprintf(w, "fallbacks: %d\n", s.DFAFallbacks)
	}
}

func writeDOT(path string, stdout, stderr io.Writer, write func(io.Writer) error) int {
	if path == "-" {
		if err := write(stdout); err != nil {
			fmt.Fprintln(stderr, "dot:", err)
			return 1
		}
		return 0
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(stderr, "cannot create %s: %v\n", path, err)
		return 1
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintln(stderr, "dot:", err)
		return 1
	}
	fmt.Fprintf(stderr, "DOT written to %s\n", path)
	return 0
}
