package lr

import (
	"fmt"

	"github.com/ctlr-go/ctlr/lr/sparse"
)

// ActionKind classifies an ACTION table entry.
type ActionKind int32

const (
	actionNone ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	}
	return "none"
}

// Action is one ACTION table entry: Shift carries the target state in
// State, Reduce carries the rule to apply in Rule, Accept carries neither.
type Action struct {
	Kind  ActionKind
	State int
	Rule  *Rule
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Rule)
	case Accept:
		return "accept"
	}
	return "-"
}

// Table is the pair of ACTION/GOTO matrices derived from a Graph. The
// underlying sparse.IntMatrix stores a (a,b) pair per cell; ACTION cells
// use that pair for (kind, rule-id-or-target), GOTO cells use only the
// first slot for the successor state.
type Table struct {
	mode      Mode
	grammar   *PreparedGrammar
	states    []*State
	terms     map[string]int // terminal id -> ACTION column
	nonterms  map[string]int // non-terminal id -> GOTO column
	action    *sparse.IntMatrix
	goto_     *sparse.IntMatrix
	conflicts []*Error
}

// BuildTable derives the ACTION/GOTO tables from gr under mode. Shifts and
// gotos come from gr's edges; reduces come from scanning each state's
// closure for exhausted items, and the accept action from the start item
// whose dot sits before <eos>, in a single pass since canonical LR(1)
// reduce decisions need every state's items anyway. Every conflict is
// recorded; if there is any, BuildTable returns the table together with
// the first conflict as its error, and ConflictReport lists them all.
func BuildTable(ga *LRAnalysis, gr *Graph, mode Mode) (*Table, error) {
	g := ga.Grammar()
	startRule, err := g.Rule(0)
	if err != nil {
		return nil, err
	}

	t := &Table{
		mode:     mode,
		grammar:  g,
		states:   gr.States(),
		terms:    make(map[string]int),
		nonterms: make(map[string]int),
	}
	for i, sym := range g.Terminals() {
		t.terms[sym.ID()] = i
	}
	t.terms[EndOfStream.ID()] = len(t.terms)
	for i, sym := range g.NonTerminals() {
		t.nonterms[sym.ID()] = i
	}

	nStates := len(t.states)
	t.action = sparse.NewIntMatrix(nStates, len(t.terms), sparse.DefaultNullValue)
	t.goto_ = sparse.NewIntMatrix(nStates, len(t.nonterms), sparse.DefaultNullValue)

	for _, e := range gr.Edges() {
		if e.On.IsTerminal() {
			col, ok := t.terms[e.On.ID()]
			if !ok {
				continue
			}
			t.setAction(e.From, e.On.ID(), col, Action{Kind: Shift, State: e.To})
			continue
		}
		col, ok := t.nonterms[e.On.ID()]
		if !ok {
			continue
		}
		t.goto_.Set(e.From, col, int32(e.To))
	}

	for _, st := range t.states {
		for _, item := range st.Items.Items() {
			if item.Rule.ID == startRule.ID {
				// The augmented item <start> -> S . <eos> never actually
				// shifts <eos> -- Graph's reachable() deliberately omits an
				// edge for it, since there is nothing beyond end-of-stream
				// to transition into. Accept fires here instead of a shift.
				if sym, ok := item.SymbolAtDot(); ok && sym.IsEOS() {
					col := t.terms[EndOfStream.ID()]
					t.setAction(st.ID, EndOfStream.ID(), col, Action{Kind: Accept})
				}
				continue
			}
			if !item.IsExhausted() {
				continue
			}
			for _, la := range t.reduceLookaheads(ga, item) {
				col, ok := t.terms[la.ID()]
				if !ok {
					continue
				}
				t.setAction(st.ID, la.ID(), col, Action{Kind: Reduce, Rule: item.Rule})
			}
		}
	}

	tracer().Debugf("built %v table: %d states, %d action entries, %d conflicts",
		mode, nStates, t.action.ValueCount(), len(t.conflicts))
	if len(t.conflicts) > 0 {
		return t, t.conflicts[0]
	}
	return t, nil
}

// reduceLookaheads returns the terminals an exhausted item reduces on: its
// own lookahead tuple under LR1, or every terminal (including <eos>) under
// LR0, the defining "reduce regardless of context" weakness of LR(0) tables.
func (t *Table) reduceLookaheads(ga *LRAnalysis, item Item) []Symbol {
	if t.mode == LR1 {
		return item.Lookahead
	}
	g := ga.Grammar()
	out := make([]Symbol, 0, len(t.terms))
	for id := range t.terms {
		sym, _ := g.Symbol(id)
		out = append(out, sym)
	}
	return out
}

// setAction installs act at (state, col), recording a conflict instead of
// overwriting when a different action is already present.
func (t *Table) setAction(state int, symbolID string, col int, act Action) {
	kind, target := t.action.Values(state, col)
	if kind != sparse.DefaultNullValue {
		existing := decodeAction(t, kind, target)
		if existing.Kind == act.Kind && existing.State == act.State &&
			(existing.Rule == act.Rule) {
			return // identical action already installed, not a conflict
		}
		t.conflicts = append(t.conflicts, &Error{
			Kind:     ShiftReduceConflict,
			State:    state,
			OnSymbol: symbolID,
			Actions:  []Action{existing, act},
		})
		return
	}
	t.action.Set(state, col, int32(act.Kind))
	t.action.Add(state, col, encodeActionTarget(act))
}

func encodeActionTarget(act Action) int32 {
	if act.Kind == Reduce {
		return int32(act.Rule.ID)
	}
	return int32(act.State)
}

func decodeAction(t *Table, kind, target int32) Action {
	switch ActionKind(kind) {
	case Shift:
		return Action{Kind: Shift, State: int(target)}
	case Reduce:
		rule, _ := t.grammar.Rule(int(target))
		return Action{Kind: Reduce, Rule: rule}
	case Accept:
		return Action{Kind: Accept}
	}
	return Action{}
}

// Action returns the ACTION table entry for (state, symbolID), or an
// UnexpectedSymbol error if none is set.
func (t *Table) Action(state int, symbolID string) (Action, error) {
	col, ok := t.terms[symbolID]
	if !ok {
		return Action{}, errUnknownSymbol(symbolID)
	}
	kind, target := t.action.Values(state, col)
	if kind == sparse.DefaultNullValue {
		return Action{}, &Error{Kind: UnexpectedSymbol, Got: symbolID, Expected: t.expectedAt(state)}
	}
	return decodeAction(t, kind, target), nil
}

// expectedAt lists the terminals with a non-empty ACTION at state, for
// diagnostics on an UnexpectedSymbol error.
func (t *Table) expectedAt(state int) []string {
	out := make([]string, 0, 4)
	for id, col := range t.terms {
		if kind, _ := t.action.Values(state, col); kind != sparse.DefaultNullValue {
			out = append(out, id)
		}
	}
	return out
}

// Goto returns the successor state reached from state on non-terminal
// symbolID, or false if none is set.
func (t *Table) Goto(state int, symbolID string) (int, bool) {
	col, ok := t.nonterms[symbolID]
	if !ok {
		return 0, false
	}
	v := t.goto_.Value(state, col)
	if v == t.goto_.NullValue() {
		return 0, false
	}
	return int(v), true
}

// HasConflicts reports whether BuildTable recorded any shift/reduce or
// reduce/reduce conflicts.
func (t *Table) HasConflicts() bool { return len(t.conflicts) > 0 }

// ConflictReport returns every conflict recorded while building the table,
// one *Error per colliding (state, symbol) cell.
func (t *Table) ConflictReport() []*Error { return t.conflicts }
