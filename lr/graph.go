package lr

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/ctlr-go/ctlr/lr/iteratable"
)

// State is a node of the canonical LR collection: an item set plus its
// serial id, assigned on first insertion into the Graph.
type State struct {
	ID    int
	Items *ItemSet
}

// Edge is a transition between two states, labeled by the symbol that was
// advanced on.
type Edge struct {
	From, To int
	On       Symbol
}

// Graph is the canonical collection of item sets and the transitions
// between them. Build one with BuildGraph; it is immutable thereafter.
// States are held in an id-ordered set and edges in a list.
type Graph struct {
	grammar *PreparedGrammar
	mode    Mode
	states  *treeset.Set
	edges   *arraylist.List
}

// States returns every state, ordered by id, state 0 first.
func (gr *Graph) States() []*State {
	vals := gr.states.Values()
	out := make([]*State, len(vals))
	for i, v := range vals {
		out[i] = v.(*State)
	}
	return out
}

// Edges returns every transition.
func (gr *Graph) Edges() []Edge {
	out := make([]Edge, 0, gr.edges.Size())
	it := gr.edges.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Edge))
	}
	return out
}

// EdgesFrom returns the transitions leaving state id.
func (gr *Graph) EdgesFrom(id int) []Edge {
	out := make([]Edge, 0, 4)
	it := gr.edges.Iterator()
	for it.Next() {
		e := it.Value().(Edge)
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

func stateComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*State).ID, b.(*State).ID)
}

// kernelHash digests a kernel's items into a string key, giving state
// lookup by kernel an O(1) index instead of a linear scan over every
// built state's item set.
func kernelHash(kernel *iteratable.Set) string {
	items := kernel.Values()
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = asItem(it).Key()
	}
	sort.Strings(keys)
	h, err := structhash.Hash(struct{ Keys []string }{Keys: keys}, 1)
	if err != nil {
		panic(err) // structhash only errors on unsupported types; keys is always []string
	}
	return h
}

// BuildGraph runs the canonical-collection algorithm: state 0's kernel is
// the seeded start item; a FIFO worklist (an id-ordered set) is expanded
// by closing each state and following every reachable symbol, reusing an
// existing state when its kernel matches, or allocating and enqueuing a
// new one otherwise.
func BuildGraph(ga *LRAnalysis, mode Mode) (*Graph, error) {
	if mode != LR0 && mode != LR1 {
		return nil, errUnsupportedAlgorithm(mode)
	}
	g := ga.Grammar()
	startRule, err := g.Rule(0)
	if err != nil {
		return nil, err
	}

	gr := &Graph{
		grammar: g,
		mode:    mode,
		states:  treeset.NewWith(stateComparator),
		edges:   arraylist.New(),
	}
	byHash := make(map[string][]*State)
	nextID := 0

	addState := func(kernel *iteratable.Set) (*State, bool) {
		h := kernelHash(kernel)
		for _, cand := range byHash[h] {
			if cand.Items.Kernel.Equals(kernel) {
				return cand, false
			}
		}
		closure := ga.closeItemSet(kernel, mode)
		st := &State{ID: nextID, Items: &ItemSet{Kernel: kernel, Closure: closure}}
		nextID++
		gr.states.Add(st)
		byHash[h] = append(byHash[h], st)
		return st, true
	}

	startKernel := newItemSet(StartItem(startRule, mode))
	s0, _ := addState(startKernel)

	worklist := treeset.NewWith(stateComparator)
	worklist.Add(s0)
	for !worklist.Empty() {
		cur := worklist.Values()[0].(*State)
		worklist.Remove(cur)

		targets := reachable(cur.Items.Closure)
		for _, sym := range targets {
			nextKernel := advanceOn(cur.Items.Closure, sym)
			if nextKernel.Empty() {
				continue
			}
			next, fresh := addState(nextKernel)
			gr.edges.Add(Edge{From: cur.ID, To: next.ID, On: sym})
			if fresh {
				worklist.Add(next)
			}
		}
	}
	tracer().Debugf("built LR graph: %d states, %d edges", gr.states.Size(), gr.edges.Size())
	return gr, nil
}

// Dump renders every state's closure, for debugging.
func (gr *Graph) Dump() string {
	s := ""
	for _, st := range gr.States() {
		s += fmt.Sprintf("--- state %d ---\n%s", st.ID, st.Items.String())
	}
	return s
}
