package parse_test

import (
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

type idToken string

func (t idToken) SymbolID() string   { return string(t) }
func (t idToken) Pos() ctlr.Position { return ctlr.Position{} }

type fixedSource struct {
	ids []string
	pos int
}

func (s *fixedSource) Next() (ctlr.Token, error) {
	if s.pos >= len(s.ids) {
		return nil, io.EOF
	}
	id := s.ids[s.pos]
	s.pos++
	return idToken(id), nil
}

// symID is the test suite's minimal ctlr.AST: its own symbol id and
// nothing else.
type symID string

func (s symID) SymbolID() string { return string(s) }

type countingReducer struct {
	shifts, reduces int
}

func (r *countingReducer) Shift(tok ctlr.Token) (ctlr.AST, error) {
	r.shifts++
	return symID(tok.SymbolID()), nil
}

func (r *countingReducer) Reduce(rule *lr.Rule, rhs []ctlr.AST) (ctlr.AST, error) {
	r.reduces++
	return symID(rule.LHS.ID()), nil
}

func buildTable(t *testing.T) (*lr.Table, *lr.PreparedGrammar) {
	t.Helper()
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").T("+").End()
	b.LHS("A").T("-").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	ga, err := lr.Analysis(g)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	graph, err := lr.BuildGraph(ga, lr.LR1)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	table, err := lr.BuildTable(ga, graph, lr.LR1)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if table.HasConflicts() {
		t.Fatalf("unexpected conflicts: %v", table.ConflictReport())
	}
	return table, ga.Grammar()
}

func TestParseAccepts(t *testing.T) {
	defer useTestTracing(t)()
	table, grammar := buildTable(t)
	red := &countingReducer{}
	p := parse.NewParser(table, grammar)
	result, err := p.Parse(&fixedSource{ids: []string{"+", "a"}}, red)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.SymbolID() != lr.StartSymbol.ID() {
		t.Fatalf("expected result %q, got %v", lr.StartSymbol.ID(), result)
	}
	if red.shifts != 2 || red.reduces != 3 {
		t.Fatalf("expected 2 shifts and 3 reduces, got %d/%d", red.shifts, red.reduces)
	}
}

func TestParseEpsilonBranch(t *testing.T) {
	defer useTestTracing(t)()
	table, grammar := buildTable(t)
	p := parse.NewParser(table, grammar)
	result, err := p.Parse(&fixedSource{ids: []string{"a"}}, &countingReducer{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.SymbolID() != lr.StartSymbol.ID() {
		t.Fatalf("expected result %q, got %v", lr.StartSymbol.ID(), result)
	}
}

func TestParseUnknownSymbol(t *testing.T) {
	defer useTestTracing(t)()
	table, grammar := buildTable(t)
	p := parse.NewParser(table, grammar)
	_, err := p.Parse(&fixedSource{ids: []string{"z"}}, &countingReducer{})
	if err == nil {
		t.Fatalf("expected an error for an unknown token symbol")
	}
}
