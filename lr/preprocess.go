package lr

import "fmt"

// Rule is a preprocessed production: LHS and RHS resolved to Symbol values,
// numbered in declaration order. Rule 0 is always the start rule, and its
// RHS has been extended with EndOfStream.
type Rule struct {
	ID  int
	LHS Symbol
	RHS []Symbol
}

func (r *Rule) String() string {
	s := fmt.Sprintf("%d: %s ->", r.ID, r.LHS)
	for _, sym := range r.RHS {
		s += " " + sym.String()
	}
	return s
}

// PreparedGrammar is the output of Preprocess: a finite set of symbols
// partitioned into terminals and non-terminals by rule-LHS presence, a
// numbered rule list with rule 0 augmented, and the nominated start symbol.
type PreparedGrammar struct {
	start       Symbol
	rules       []*Rule
	terminals   map[string]Symbol
	nonterms    map[string]Symbol
	rulesByLHS  map[string][]*Rule
	allSymbols  map[string]Symbol
}

// Preprocess normalizes a raw Grammar: it injects the <start> -> S <eos>
// augmentation as rule 0, resolves every identifier to a Symbol, numbers
// rules, and classifies every referenced symbol as terminal or
// non-terminal purely by whether it appears as some rule's LHS. Fails with
// UnknownSymbol if a RHS identifier was never declared.
func Preprocess(g *Grammar) (*PreparedGrammar, error) {
	lhsSet := make(map[string]bool)
	for _, r := range g.rules {
		lhsSet[r.LHS] = true
	}

	pg := &PreparedGrammar{
		start:      StartSymbol,
		terminals:  make(map[string]Symbol),
		nonterms:   make(map[string]Symbol),
		rulesByLHS: make(map[string][]*Rule),
		allSymbols: make(map[string]Symbol),
	}
	pg.nonterms[StartSymbol.ID()] = StartSymbol
	pg.terminals[EndOfStream.ID()] = EndOfStream
	pg.terminals[Epsilon.ID()] = Epsilon
	pg.allSymbols[StartSymbol.ID()] = StartSymbol
	pg.allSymbols[EndOfStream.ID()] = EndOfStream
	pg.allSymbols[Epsilon.ID()] = Epsilon

	resolve := func(id string) (Symbol, error) {
		if sym, ok := pg.allSymbols[id]; ok {
			return sym, nil
		}
		if _, ok := g.byID[id]; !ok {
			return Symbol{}, errUnknownSymbol(id)
		}
		var sym Symbol
		if lhsSet[id] {
			sym = NonTerminal(id)
			pg.nonterms[id] = sym
		} else {
			sym = Terminal(id)
			pg.terminals[id] = sym
		}
		pg.allSymbols[id] = sym
		return sym, nil
	}

	pg.rules = make([]*Rule, 0, len(g.rules)+1)

	startRHS, err := resolve(g.rules[0].LHS)
	if err != nil {
		return nil, err
	}
	startRule := &Rule{ID: 0, LHS: StartSymbol, RHS: []Symbol{startRHS, EndOfStream}}
	pg.rules = append(pg.rules, startRule)
	pg.rulesByLHS[StartSymbol.ID()] = append(pg.rulesByLHS[StartSymbol.ID()], startRule)

	for _, rd := range g.rules {
		lhs, err := resolve(rd.LHS)
		if err != nil {
			return nil, err
		}
		var rhs []Symbol
		if len(rd.RHS) == 0 {
			rhs = []Symbol{}
		} else {
			rhs = make([]Symbol, 0, len(rd.RHS))
			for _, id := range rd.RHS {
				sym, err := resolve(id)
				if err != nil {
					return nil, err
				}
				rhs = append(rhs, sym)
			}
		}
		rule := &Rule{ID: len(pg.rules), LHS: lhs, RHS: rhs}
		pg.rules = append(pg.rules, rule)
		pg.rulesByLHS[lhs.ID()] = append(pg.rulesByLHS[lhs.ID()], rule)
	}

	tracer().Debugf("preprocessed grammar: %d rules, %d terminals, %d non-terminals",
		len(pg.rules), len(pg.terminals), len(pg.nonterms))
	return pg, nil
}

// Start returns the grammar's nominated start symbol (LHS of the user
// grammar's first rule, found as the first RHS symbol of the augmented
// rule 0 -- not the <start> augmentation symbol).
func (pg *PreparedGrammar) Start() Symbol { return pg.rules[0].RHS[0] }

// Rule returns the preprocessed rule with the given id, or an error if id
// is out of range.
func (pg *PreparedGrammar) Rule(id int) (*Rule, error) {
	if id < 0 || id >= len(pg.rules) {
		return nil, errUnknownRule(id)
	}
	return pg.rules[id], nil
}

// Rules returns every preprocessed rule, rule 0 (the augmented start rule)
// first.
func (pg *PreparedGrammar) Rules() []*Rule { return pg.rules }

// RulesFor returns the rules whose LHS is sym.
func (pg *PreparedGrammar) RulesFor(sym Symbol) []*Rule { return pg.rulesByLHS[sym.ID()] }

// IsTerminal reports whether the identifier resolves to a terminal symbol.
func (pg *PreparedGrammar) IsTerminal(id string) bool {
	_, ok := pg.terminals[id]
	return ok
}

// Symbol resolves an identifier to its Symbol within this grammar.
func (pg *PreparedGrammar) Symbol(id string) (Symbol, bool) {
	sym, ok := pg.allSymbols[id]
	return sym, ok
}

// EachSymbol calls f once for every symbol referenced by the grammar,
// including the sentinels.
func (pg *PreparedGrammar) EachSymbol(f func(Symbol)) {
	for _, sym := range pg.allSymbols {
		f(sym)
	}
}

// Terminals returns every terminal symbol except the sentinels.
func (pg *PreparedGrammar) Terminals() []Symbol {
	out := make([]Symbol, 0, len(pg.terminals))
	for _, sym := range pg.terminals {
		if sym.isSentinel() {
			continue
		}
		out = append(out, sym)
	}
	return out
}

// NonTerminals returns every non-terminal symbol except <start>.
func (pg *PreparedGrammar) NonTerminals() []Symbol {
	out := make([]Symbol, 0, len(pg.nonterms))
	for _, sym := range pg.nonterms {
		if sym.isSentinel() {
			continue
		}
		out = append(out, sym)
	}
	return out
}

// Dump renders every rule, one per line, for debugging.
func (pg *PreparedGrammar) Dump() string {
	s := ""
	for _, r := range pg.rules {
		s += r.String() + "\n"
	}
	return s
}
