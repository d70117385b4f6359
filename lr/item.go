package lr

import (
	"fmt"
	"strings"

	"github.com/ctlr-go/ctlr/lr/iteratable"
)

// Mode selects the lookahead width used throughout closure and table
// construction: LR0 carries no lookahead (k=0, the defining weakness that
// forces a reduce on every terminal from an exhausted item); LR1 carries
// exactly one lookahead symbol per item.
type Mode int

const (
	LR0 Mode = iota
	LR1
)

func (m Mode) String() string {
	if m == LR0 {
		return "LR0"
	}
	if m == LR1 {
		return "LR1"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) k() int {
	if m == LR1 {
		return 1
	}
	return 0
}

// Item is a dotted rule plus an optional lookahead tuple of fixed width k
// (0 for LR0, 1 for LR1).
type Item struct {
	Rule      *Rule
	Dot       int
	Lookahead []Symbol
}

// Key makes Item satisfy iteratable.Keyer: items are distinct, for set
// membership, whenever their (rule, dot, lookahead) triple differs -- this
// is what gives canonical LR(1) more states than LALR(1) would.
func (it Item) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d", it.Rule.ID, it.Dot)
	for _, la := range it.Lookahead {
		b.WriteByte('/')
		b.WriteString(la.ID())
	}
	return b.String()
}

// Core drops the lookahead tuple, leaving only (rule-id, dot-position).
// Two items are core-equal iff their Core()s have the same Key.
func (it Item) Core() Item { return Item{Rule: it.Rule, Dot: it.Dot} }

// IsExhausted reports whether the dot has reached the end of the RHS.
func (it Item) IsExhausted() bool { return it.Dot >= len(it.Rule.RHS) }

// SymbolAtDot returns the symbol immediately after the dot, if any.
func (it Item) SymbolAtDot() (Symbol, bool) {
	if it.IsExhausted() {
		return Symbol{}, false
	}
	return it.Rule.RHS[it.Dot], true
}

// Advance returns the item with the dot moved one position to the right,
// preserving the lookahead tuple. Advancing an exhausted item is a no-op.
func (it Item) Advance() Item {
	if it.IsExhausted() {
		return it
	}
	return Item{Rule: it.Rule, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Rest returns the RHS symbols after the symbol at the dot (the "beta" in
// A -> alpha . X beta used by LR(1) closure's lookahead computation).
func (it Item) Rest() []Symbol {
	if it.Dot+1 >= len(it.Rule.RHS) {
		return nil
	}
	return it.Rule.RHS[it.Dot+1:]
}

func (it Item) String() string {
	var b strings.Builder
	for i, sym := range it.Rule.RHS {
		if i == it.Dot {
			b.WriteString("• ")
		}
		b.WriteString(sym.String())
		b.WriteByte(' ')
	}
	if it.IsExhausted() {
		b.WriteString("•")
	}
	s := fmt.Sprintf("%s -> %s", it.Rule.LHS, strings.TrimSpace(b.String()))
	if len(it.Lookahead) > 0 {
		las := make([]string, len(it.Lookahead))
		for i, la := range it.Lookahead {
			las[i] = la.ID()
		}
		s += ", " + strings.Join(las, "/")
	}
	return s
}

// ItemSet is a canonical-collection node: a kernel (the items that seeded
// it) plus its closure (kernel items plus everything closure adds). Two
// item sets are equal iff their kernels are equal -- closure is a pure
// function of the kernel, so it never needs comparing.
type ItemSet struct {
	Kernel  *iteratable.Set
	Closure *iteratable.Set
}

func newItemSet(items ...Item) *iteratable.Set {
	vals := make([]interface{}, len(items))
	for i, it := range items {
		vals[i] = it
	}
	return iteratable.New(vals...)
}

func asItem(v interface{}) Item { return v.(Item) }

// Equals compares two item sets by kernel only.
func (s *ItemSet) Equals(other *ItemSet) bool {
	return s.Kernel.Equals(other.Kernel)
}

// Items returns every item in the closure (kernel included).
func (s *ItemSet) Items() []Item {
	vals := s.Closure.Values()
	out := make([]Item, len(vals))
	for i, v := range vals {
		out[i] = asItem(v)
	}
	return out
}

func (s *ItemSet) String() string {
	var b strings.Builder
	for _, it := range s.Items() {
		b.WriteString(it.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// closeItemSet computes the closure of a kernel: for LR0, for every
// non-terminal X immediately after the dot in some item in the set, add
// every item X -> . gamma; for LR1, instead add one item X -> . gamma, b
// for every b in FIRST(beta a), where the generating item is A -> alpha . X
// beta, a. Fixed-point iteration stops once a pass adds nothing new.
func (ga *LRAnalysis) closeItemSet(kernel *iteratable.Set, mode Mode) *iteratable.Set {
	closure := kernel.Copy()
	closure.IterateOnce()
	for closure.Next() {
		item := asItem(closure.Item())
		sym, ok := item.SymbolAtDot()
		if !ok || sym.IsTerminal() {
			continue
		}
		lookaheads := ga.closureLookaheads(item, mode)
		additions := newItemSet()
		for _, rule := range ga.g.RulesFor(sym) {
			if mode == LR0 {
				additions.Add(Item{Rule: rule, Dot: 0})
				continue
			}
			for _, la := range lookaheads {
				additions.Add(Item{Rule: rule, Dot: 0, Lookahead: []Symbol{la}})
			}
		}
		if fresh := additions.Difference(closure); !fresh.Empty() {
			closure.Union(fresh)
		}
	}
	return closure
}

// closureLookaheads computes, for LR1, FIRST(beta a) where the generating
// item is A -> alpha . X beta, a: if beta is non-empty its leading symbol's
// FIRST set is used, otherwise the generating item's own lookahead symbol
// propagates through. For LR0 it returns nil (no lookahead carried).
func (ga *LRAnalysis) closureLookaheads(item Item, mode Mode) []Symbol {
	if mode == LR0 {
		return nil
	}
	beta := item.Rest()
	if len(beta) == 0 {
		return item.Lookahead
	}
	firstBeta := ga.First(beta[0])
	out := make([]Symbol, 0, len(firstBeta))
	for id := range firstBeta {
		sym, _ := ga.g.Symbol(id)
		out = append(out, sym)
	}
	return out
}

// advanceOn produces the kernel reached from set on symbol sym: advance(i)
// for every item i in set whose symbol at the dot is sym.
func advanceOn(set *iteratable.Set, sym Symbol) *iteratable.Set {
	out := newItemSet()
	for _, v := range set.Values() {
		it := asItem(v)
		if at, ok := it.SymbolAtDot(); ok && at.Equal(sym) {
			out.Add(it.Advance())
		}
	}
	return out
}

// reachable yields the distinct symbols other than <eos> and <eps> that
// appear at the dot of some item in set, keyed by id. It does not compute
// successor kernels; advanceOn does that per symbol.
func reachable(set *iteratable.Set) map[string]Symbol {
	out := make(map[string]Symbol)
	for _, v := range set.Values() {
		it := asItem(v)
		sym, ok := it.SymbolAtDot()
		if !ok || sym.IsEOS() || sym.IsEpsilon() {
			continue
		}
		out[sym.ID()] = sym
	}
	return out
}

// StartItem returns the seed item for state 0: <start> -> . S <eos>, with
// lookahead {<eos>} under LR1 and no lookahead under LR0.
func StartItem(startRule *Rule, mode Mode) Item {
	it := Item{Rule: startRule, Dot: 0}
	if mode == LR1 {
		it.Lookahead = []Symbol{EndOfStream}
	}
	return it
}
