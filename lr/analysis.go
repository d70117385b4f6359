package lr

// LRAnalysis wraps a PreparedGrammar with memoized FIRST/FOLLOW sets.
// Clients normally obtain the preprocessed grammar only through an
// LRAnalysis: Preprocess already ran by the time Analysis returns.
type LRAnalysis struct {
	g      *PreparedGrammar
	first  map[string]map[string]bool // non-terminal id -> terminal ids
	follow map[string]map[string]bool // symbol id -> terminal ids (incl. <eos>)
}

// Analysis preprocesses g and computes FIRST/FOLLOW for every non-terminal.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	pg, err := Preprocess(g)
	if err != nil {
		return nil, err
	}
	ga := &LRAnalysis{
		g:      pg,
		first:  make(map[string]map[string]bool),
		follow: make(map[string]map[string]bool),
	}
	ga.computeFirst()
	ga.computeFollow()
	return ga, nil
}

// Grammar returns the preprocessed grammar this analysis was built from.
func (ga *LRAnalysis) Grammar() *PreparedGrammar { return ga.g }

// First returns FIRST(sym): for a terminal, {sym}; for a non-terminal, the
// terminals that can begin some derivation of it.
func (ga *LRAnalysis) First(sym Symbol) map[string]bool {
	if sym.IsTerminal() {
		return map[string]bool{sym.ID(): true}
	}
	return ga.first[sym.ID()]
}

// firstOfSeq computes FIRST of a symbol sequence by propagating across the
// leftmost symbol only -- this grammar family forbids transparent
// nullability; an empty rule's RHS has zero length rather than carrying
// <eps> as a placeholder element, so <eps> never appears as an element of
// a non-empty sequence here.
func (ga *LRAnalysis) firstOfSeq(seq []Symbol) map[string]bool {
	if len(seq) == 0 {
		return map[string]bool{}
	}
	return ga.First(seq[0])
}

// Follow returns FOLLOW(sym): the terminals (plus <eos> for the start
// symbol) that can appear immediately after sym in some sentential form.
func (ga *LRAnalysis) Follow(sym Symbol) map[string]bool {
	return ga.follow[sym.ID()]
}

func (ga *LRAnalysis) computeFirst() {
	for _, nt := range ga.g.NonTerminals() {
		if _, done := ga.first[nt.ID()]; !done {
			ga.first[nt.ID()] = ga.firstOf(nt, make(map[string]bool))
		}
	}
}

// firstOf computes FIRST(sym) by a depth-first walk over productions,
// guarded against re-expanding a non-terminal already visited in this walk.
func (ga *LRAnalysis) firstOf(sym Symbol, visiting map[string]bool) map[string]bool {
	if sym.IsTerminal() {
		return map[string]bool{sym.ID(): true}
	}
	if set, ok := ga.first[sym.ID()]; ok {
		return set
	}
	if visiting[sym.ID()] {
		return map[string]bool{}
	}
	visiting[sym.ID()] = true
	set := make(map[string]bool)
	for _, rule := range ga.g.RulesFor(sym) {
		if len(rule.RHS) == 0 {
			set[Epsilon.ID()] = true
			continue
		}
		lead := rule.RHS[0]
		for t := range ga.firstOf(lead, visiting) {
			set[t] = true
		}
	}
	return set
}

func (ga *LRAnalysis) computeFollow() {
	ga.g.EachSymbol(func(sym Symbol) {
		if sym.IsNonTerminal() {
			ga.follow[sym.ID()] = make(map[string]bool)
		}
	})
	ga.follow[StartSymbol.ID()] = map[string]bool{EndOfStream.ID(): true}

	changed := true
	for changed {
		changed = false
		for _, rule := range ga.g.Rules() {
			for i, sym := range rule.RHS {
				if !sym.IsNonTerminal() {
					continue
				}
				beta := rule.RHS[i+1:]
				before := len(ga.follow[sym.ID()])
				if len(beta) == 0 {
					for t := range ga.follow[rule.LHS.ID()] {
						ga.follow[sym.ID()][t] = true
					}
				} else {
					for t := range ga.firstOfSeq(beta) {
						if t == Epsilon.ID() {
							continue
						}
						ga.follow[sym.ID()][t] = true
					}
					if beta[0].IsEpsilon() {
						for t := range ga.follow[rule.LHS.ID()] {
							ga.follow[sym.ID()][t] = true
						}
					}
				}
				if len(ga.follow[sym.ID()]) != before {
					changed = true
				}
			}
		}
	}
}
