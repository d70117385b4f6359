package lr

import "github.com/npillmayer/schuko/tracing"

// tracer traces to the "ctlr.lr" key, following the one-tracer-per-package
// convention used throughout this module.
func tracer() tracing.Trace {
	return tracing.Select("ctlr.lr")
}

// RuleDef is a user-facing production rule: an LHS identifier and an
// ordered sequence of RHS identifiers. An empty RHS stands for the single
// RHS symbol <eps>.
type RuleDef struct {
	LHS string
	RHS []string
}

// Grammar holds a raw, unpreprocessed set of symbol declarations and rule
// definitions. Construct one with NewGrammar or via NewGrammarBuilder.
// Rule 0 of the first argument to NewGrammar (or the first rule added
// through the builder) becomes the start rule.
type Grammar struct {
	decls []SymbolDecl
	rules []RuleDef
	byID  map[string]SymbolDecl
}

// NewGrammar validates decls and rules against each other and returns a raw
// Grammar. It fails with DuplicatedSymbolId if two declarations share an
// identifier, or UnknownSymbol if a rule references an undeclared
// identifier (on either side). The first rule in rules is the start rule.
func NewGrammar(decls []SymbolDecl, rules []RuleDef) (*Grammar, error) {
	byID := make(map[string]SymbolDecl, len(decls))
	for _, d := range decls {
		if _, dup := byID[d.ID]; dup {
			return nil, errDuplicatedSymbol(d.ID)
		}
		byID[d.ID] = d
	}
	if len(rules) == 0 {
		return nil, &Error{Kind: UnknownSymbol, Message: "grammar has no rules"}
	}
	for _, r := range rules {
		if _, ok := byID[r.LHS]; !ok {
			return nil, errUnknownSymbol(r.LHS)
		}
		for _, rhs := range r.RHS {
			if _, ok := byID[rhs]; !ok {
				return nil, errUnknownSymbol(rhs)
			}
		}
	}
	g := &Grammar{
		decls: append([]SymbolDecl(nil), decls...),
		rules: append([]RuleDef(nil), rules...),
		byID:  byID,
	}
	tracer().Debugf("new grammar: %d symbols, %d rules", len(decls), len(rules))
	return g, nil
}

// Rules returns the grammar's rule definitions in declaration order.
func (g *Grammar) Rules() []RuleDef { return append([]RuleDef(nil), g.rules...) }

// Declarations returns the grammar's symbol declarations in declaration order.
func (g *Grammar) Declarations() []SymbolDecl { return append([]SymbolDecl(nil), g.decls...) }

// StartSymbolID returns the LHS identifier of rule 0.
func (g *Grammar) StartSymbolID() string { return g.rules[0].LHS }

// --- Builder ----------------------------------------------------------

// GrammarBuilder accumulates rule definitions through a fluent, per-rule
// chain: b.LHS("S").N("A").T("a").End(). Symbols named through N/T are
// declared implicitly on first use; Epsilon rules need no further symbol
// declaration since <eps> is a built-in sentinel.
type GrammarBuilder struct {
	name  string
	rules []RuleDef
	decls []SymbolDecl
	seen  map[string]bool
	err   error
}

// NewGrammarBuilder creates an empty builder. name is stored on the
// builder; nothing else in the package reads it.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name, seen: make(map[string]bool)}
}

// ruleBuilder accumulates the RHS of a single rule.
type ruleBuilder struct {
	b   *GrammarBuilder
	lhs string
	rhs []string
}

// LHS starts a new rule with the given left-hand side. The first call to
// LHS across the builder's lifetime names the start symbol.
func (b *GrammarBuilder) LHS(id string) *ruleBuilder {
	b.declare(id, false)
	return &ruleBuilder{b: b, lhs: id}
}

func (b *GrammarBuilder) declare(id string, terminal bool) {
	if b.seen[id] {
		return
	}
	b.seen[id] = true
	b.decls = append(b.decls, SymbolDecl{ID: id, Terminal: terminal})
}

// N appends a non-terminal to the rule's RHS.
func (r *ruleBuilder) N(id string) *ruleBuilder {
	r.b.declare(id, false)
	r.rhs = append(r.rhs, id)
	return r
}

// T appends a terminal to the rule's RHS.
func (r *ruleBuilder) T(id string) *ruleBuilder {
	r.b.declare(id, true)
	r.rhs = append(r.rhs, id)
	return r
}

// End finishes the rule, adding it to the builder, and returns the builder
// so another LHS(...) call can start the next rule.
func (r *ruleBuilder) End() *GrammarBuilder {
	r.b.rules = append(r.b.rules, RuleDef{LHS: r.lhs, RHS: r.rhs})
	return r.b
}

// Epsilon finishes the rule with an empty RHS.
func (r *ruleBuilder) Epsilon() *GrammarBuilder {
	r.rhs = nil
	return r.End()
}

// Grammar finalizes the builder into a raw Grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewGrammar(b.decls, b.rules)
}
