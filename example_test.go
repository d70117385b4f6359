/*
Copyright (c) 2024, ctlr contributors

End-to-end acceptance tests exercising the full pipeline: grammar intake,
analysis, graph and table construction, and the shift-reduce driver,
one assembling test per public-facing usage pattern.
*/
package ctlr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ctlr-go/ctlr"
	"github.com/ctlr-go/ctlr/lr"
	"github.com/ctlr-go/ctlr/lr/parse"
)

func useTestTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

// astNode is the test suite's stand-in AST: a symbol label plus, for
// internal nodes, the rule that produced it and its children in order.
type astNode struct {
	symbol   string
	rule     *lr.Rule
	children []*astNode
}

// recordingReducer builds astNode trees and records every rule id it
// reduced, in order, so a test can assert on the reduction trace: reduces
// form a rightmost derivation in reverse.
type recordingReducer struct {
	reduced []int
}

func (r *recordingReducer) Shift(tok ctlr.Token) (ctlr.AST, error) {
	return &astNode{symbol: tok.SymbolID()}, nil
}

func (r *recordingReducer) Reduce(rule *lr.Rule, rhs []ctlr.AST) (ctlr.AST, error) {
	r.reduced = append(r.reduced, rule.ID)
	n := &astNode{symbol: rule.LHS.ID(), rule: rule}
	for _, v := range rhs {
		n.children = append(n.children, v.(*astNode))
	}
	return n, nil
}

// SymbolID makes astNode satisfy ctlr.AST, so the driver can check a
// reduced node's symbol against the rule that produced it.
func (n *astNode) SymbolID() string { return n.symbol }

// sliceSource is a parse.TokenSource over a fixed list of symbol ids, for
// tests that don't need a real lexer.
type sliceSource struct {
	ids []string
	pos int
}

type plainToken string

func (p plainToken) SymbolID() string    { return string(p) }
func (p plainToken) Pos() ctlr.Position  { return ctlr.Position{} }

func (s *sliceSource) Next() (ctlr.Token, error) {
	if s.pos >= len(s.ids) {
		return nil, io.EOF
	}
	id := s.ids[s.pos]
	s.pos++
	return plainToken(id), nil
}

// buildAndRun is the test suite's "build a table for mode, then parse
// input" helper.
func buildAndRun(g *lr.Grammar, mode lr.Mode, input []string) (*lr.Table, ctlr.AST, []int, error) {
	ga, err := lr.Analysis(g)
	if err != nil {
		return nil, nil, nil, err
	}
	graph, err := lr.BuildGraph(ga, mode)
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := lr.BuildTable(ga, graph, mode)
	if err != nil {
		return nil, nil, nil, err
	}
	if table.HasConflicts() {
		return table, nil, nil, table.ConflictReport()[0]
	}
	red := &recordingReducer{}
	p := parse.NewParser(table, ga.Grammar())
	result, err := p.Parse(&sliceSource{ids: input}, red)
	return table, result, red.reduced, err
}

// Scenario A: LR(0) arithmetic -- <start>->E<eos>; E->E*B; E->E+B; E->B;
// B->0; B->1.
func TestScenarioA_LR0Arithmetic(t *testing.T) {
	defer useTestTracing(t)()

	b := lr.NewGrammarBuilder("Arith")
	b.LHS("E").N("E").T("*").N("B").End()
	b.LHS("E").N("E").T("+").N("B").End()
	b.LHS("E").N("B").End()
	b.LHS("B").T("0").End()
	b.LHS("B").T("1").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}

	input := []string{"1", "+", "1", "*", "0", "*", "1", "*", "1"}
	table, result, reduced, err := buildAndRun(g, lr.LR0, input)
	if err != nil {
		t.Fatalf("LR0 build/parse: %v", err)
	}
	if table.HasConflicts() {
		t.Fatalf("expected conflict-free LR0 table for this grammar")
	}
	root, ok := result.(*astNode)
	if !ok || root.symbol != lr.StartSymbol.ID() {
		t.Fatalf("expected root symbol %q, got %v", lr.StartSymbol.ID(), result)
	}

	// Rules 4 and 5 are B->0 and B->1 respectively (declaration order,
	// rule 0 being the injected <start> augmentation). One B reduction
	// fires per digit in the input.
	bReduces := 0
	for _, id := range reduced {
		if id == 4 || id == 5 {
			bReduces++
		}
	}
	wantDigits := 0
	for _, sym := range input {
		if sym == "0" || sym == "1" {
			wantDigits++
		}
	}
	if bReduces != wantDigits {
		t.Fatalf("expected %d B-reductions (one per digit), got %d", wantDigits, bReduces)
	}
}

// Scenario B: LR(1) with lookahead -- <start>->E<eos>; E->(E); E->T;
// T->n; T->+T; T->T+n. LR(0) must reject it with a conflict; LR(1) must
// accept "n + n".
func TestScenarioB_LR1Lookahead(t *testing.T) {
	defer useTestTracing(t)()

	build := func() *lr.Grammar {
		b := lr.NewGrammarBuilder("Lookahead")
		b.LHS("E").T("(").N("E").T(")").End()
		b.LHS("E").N("T").End()
		b.LHS("T").T("n").End()
		b.LHS("T").T("+").N("T").End()
		b.LHS("T").N("T").T("+").T("n").End()
		g, err := b.Grammar()
		if err != nil {
			t.Fatalf("grammar: %v", err)
		}
		return g
	}

	_, _, _, err := buildAndRun(build(), lr.LR0, []string{"n", "+", "n"})
	var lrErr *lr.Error
	if !errors.As(err, &lrErr) || lrErr.Kind != lr.ShiftReduceConflict {
		t.Fatalf("expected ShiftReduceConflict building LR0 table, got %v", err)
	}

	table, result, _, err := buildAndRun(build(), lr.LR1, []string{"n", "+", "n"})
	if err != nil {
		t.Fatalf("LR1 build/parse: %v", err)
	}
	if table.HasConflicts() {
		t.Fatalf("expected conflict-free LR1 table")
	}
	if root, ok := result.(*astNode); !ok || root.symbol != lr.StartSymbol.ID() {
		t.Fatalf("expected accepted parse rooted at %q, got %v", lr.StartSymbol.ID(), result)
	}
}

// Scenario C: same grammar as B, input "n )" -- the driver must fail with
// UnexpectedSymbol pointing at the state reached after shifting "n".
func TestScenarioC_UnexpectedSymbol(t *testing.T) {
	defer useTestTracing(t)()

	b := lr.NewGrammarBuilder("Lookahead")
	b.LHS("E").T("(").N("E").T(")").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("n").End()
	b.LHS("T").T("+").N("T").End()
	b.LHS("T").N("T").T("+").T("n").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}

	_, _, _, err = buildAndRun(g, lr.LR1, []string{"n", ")"})
	var lrErr *lr.Error
	if !errors.As(err, &lrErr) || lrErr.Kind != lr.UnexpectedSymbol {
		t.Fatalf("expected UnexpectedSymbol, got %v", err)
	}
	if lrErr.Got != ")" {
		t.Fatalf("expected Got=%q, got %q", ")", lrErr.Got)
	}
	for _, exp := range lrErr.Expected {
		if exp != "+" && exp != "<eos>" {
			t.Fatalf("unexpected entry %q in Expected, want subset of {+, <eos>}", exp)
		}
	}
}

// Scenario D: two symbol declarations sharing an identifier are rejected
// at grammar intake.
func TestScenarioD_DuplicatedSymbol(t *testing.T) {
	decls := []lr.SymbolDecl{
		{ID: "x", Terminal: true},
		{ID: "x", Terminal: false},
	}
	rules := []lr.RuleDef{{LHS: "x", RHS: nil}}
	_, err := lr.NewGrammar(decls, rules)
	var lrErr *lr.Error
	if !errors.As(err, &lrErr) || lrErr.Kind != lr.DuplicatedSymbolID {
		t.Fatalf("expected DuplicatedSymbolID, got %v", err)
	}
}

// Scenario E: a rule referencing an undeclared RHS symbol is rejected at
// grammar intake: NewGrammar requires every RHS id to be declared, so the
// error surfaces before Preprocess runs.
func TestScenarioE_UnknownSymbol(t *testing.T) {
	decls := []lr.SymbolDecl{{ID: "A", Terminal: false}, {ID: "Start", Terminal: false}}
	rules := []lr.RuleDef{{LHS: "Start", RHS: []string{"A", "Z"}}}
	_, err := lr.NewGrammar(decls, rules)
	var lrErr *lr.Error
	if !errors.As(err, &lrErr) || lrErr.Kind != lr.UnknownSymbol {
		t.Fatalf("expected UnknownSymbol, got %v", err)
	}
}

// Boundary: requesting k=2 is rejected outright.
func TestUnsupportedAlgorithm(t *testing.T) {
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	ga, err := lr.Analysis(g)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	_, err = lr.BuildGraph(ga, lr.Mode(2))
	if err == nil {
		t.Fatalf("expected an error building a graph for an unsupported mode")
	}
}
