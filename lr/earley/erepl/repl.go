package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/earley"
	"github.com/npillmayer/gearley/lr/scanner"
	"github.com/npillmayer/gearley/lr/sppf"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI ("E.REPL"), where users may enter input
// for one of the demo grammars. E.REPL will parse the input and print out
// the parse tree(s). It is intended as a sandbox for getting a feeling for
// ambiguous grammars and parse forests.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gname := flag.String("grammar", "pp", "Demo grammar ["+strings.Join(demoNames(), "|")+"]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to E.REPL")   // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	intp := &Intp{}
	if err := intp.useGrammar(*gname); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	tracing.Select("gearley.lr").SetTraceLevel(traceLevel(*tlevel))
	intp.g.Dump() // only visible in debug mode
	//
	// set up REPL
	repl, err := readline.New("erepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		intp.Parse(input)
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	g      *lr.Grammar
	lexer  *scanner.LMAdapter
	policy sppf.AmbiguityPolicy
	forest *sppf.Forest
}

func (intp *Intp) useGrammar(name string) error {
	g, err := makeGrammar(name)
	if err != nil {
		return err
	}
	lexer, err := makeLexer(g)
	if err != nil {
		return err
	}
	intp.g, intp.lexer, intp.forest = g, lexer, nil
	pterm.Info.Println(fmt.Sprintf("Using grammar %s", g.Name))
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := intp.Execute(strings.Fields(line[1:]))
			if err != nil {
				pterm.Error.Println(err.Error())
			}
			if quit {
				break
			}
			continue
		}
		intp.Parse(line)
	}
	println("Good bye!")
}

// Execute executes a REPL command.
func (intp *Intp) Execute(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "grammars":
		for _, name := range demoNames() {
			pterm.Println("  " + name)
		}
	case "grammar":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :grammar <name>")
		}
		return false, intp.useGrammar(args[1])
	case "show":
		pterm.Info.Println(fmt.Sprintf("Grammar %s, fingerprint %.12s", intp.g.Name, intp.g.Fingerprint()))
		for serial, p := range intp.g.Productions() {
			pterm.Println(fmt.Sprintf("%3d: %v", serial, p))
		}
		ga := lr.Analyze(intp.g)
		if n := ga.Nullable(); len(n) > 0 {
			pterm.Println(fmt.Sprintf("nullable: %v", n))
		}
		if u := ga.Unreachable(); len(u) > 0 {
			pterm.Warning.Println(fmt.Sprintf("unreachable: %v", u))
		}
		if u := ga.Unproductive(); len(u) > 0 {
			pterm.Warning.Println(fmt.Sprintf("unproductive: %v", u))
		}
	case "policy":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :policy surface|pack|first")
		}
		switch args[1] {
		case "surface":
			intp.policy = sppf.SurfaceAmbiguity
		case "pack":
			intp.policy = sppf.PackAmbiguity
		case "first":
			intp.policy = sppf.FirstDerivation
		default:
			return false, fmt.Errorf("unknown ambiguity policy %q", args[1])
		}
		pterm.Info.Println(fmt.Sprintf("Ambiguity policy is %v", intp.policy))
	case "dot":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :dot <file>")
		}
		if intp.forest == nil {
			return false, fmt.Errorf("no parse forest to export")
		}
		f, err := os.Create(args[1])
		if err != nil {
			return false, err
		}
		defer f.Close()
		if err := sppf.ToGraphViz(intp.forest, f); err != nil {
			return false, err
		}
		pterm.Info.Println(fmt.Sprintf("Exported parse forest to %s", args[1]))
	default:
		return false, fmt.Errorf("unknown command :%s", args[0])
	}
	return false, nil
}

// Parse parses a line of input with the current grammar and displays the
// resulting parse trees.
func (intp *Intp) Parse(line string) {
	tokens, err := intp.lexer.Tokens(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	parser, err := earley.NewParser(intp.g, sppf.TreeReducers(intp.g),
		earley.WithAmbiguityPolicy(intp.policy))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	ctx := context.Background()
	if intp.forest, err = parser.Forest(ctx, tokens); err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tracer().Infof("Forest has %d branch nodes and %d pack nodes",
		intp.forest.BranchCount(), intp.forest.PackCount())
	result, err := sppf.Transform(ctx, intp.forest, sppf.TreeReducers(intp.g), sppf.WithPolicy(intp.policy))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if result.IsAmbiguous() {
		pterm.Info.Println(fmt.Sprintf("Input is ambiguous, %d parse trees", len(result.Values())))
	}
	for _, tree := range result.Values() {
		tracer().Debugf("tree = %v", tree)
		root := pterm.NewTreeFromLeveledList(leveledTree(tree, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

func leveledTree(tree *sppf.Tree, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch {
	case tree.IsLeaf():
		return append(ll, pterm.LeveledListItem{Level: level, Text: tree.Token.String()})
	case tree.IsAmbiguous():
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "⊕ ambiguous"})
		for _, alt := range tree.Alternatives {
			ll = leveledTree(alt, ll, level+1)
		}
		return ll
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: tree.Production.String()})
	for _, ch := range tree.Children {
		ll = leveledTree(ch, ll, level+1)
	}
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
