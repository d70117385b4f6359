/*
Package lr implements the preprocessing, FIRST/FOLLOW computation, canonical
LR(0)/LR(1) item-set graph construction and ACTION/GOTO table derivation for
a context-free grammar. It is the table-generator half of package ctlr; the
driver that runs the resulting tables against a token stream lives in
lr/parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) 2024, ctlr contributors
*/
package lr

import "fmt"

// symbolTag classifies a Symbol. The three sentinel tags (start, eos,
// epsilon) exist exactly once per grammar; see StartSymbol, EndOfStream and
// Epsilon below.
type symbolTag uint8

const (
	tagTerminal symbolTag = iota
	tagNonTerminal
	tagStart
	tagEOS
	tagEpsilon
)

// Symbol is an opaque grammar identifier plus a classification tag.
// Equality and hashing are by identifier alone (see Equal); two symbols
// sharing an identifier must agree on tag, which NewGrammar enforces.
type Symbol struct {
	id  string
	tag symbolTag
}

// Terminal constructs a terminal symbol with the given identifier.
func Terminal(id string) Symbol {
	return Symbol{id: id, tag: tagTerminal}
}

// NonTerminal constructs a non-terminal symbol with the given identifier.
func NonTerminal(id string) Symbol {
	return Symbol{id: id, tag: tagNonTerminal}
}

// The three sentinel symbols. StartSymbol is the LHS of the augmented start
// rule (rule 0); EndOfStream is appended to rule 0's RHS and denotes the end
// of the token stream; Epsilon marks an empty rule, whose preprocessed RHS
// holds no symbols: it appears in FIRST of that rule's LHS instead.
var (
	StartSymbol = Symbol{id: "<start>", tag: tagStart}
	EndOfStream = Symbol{id: "<eos>", tag: tagEOS}
	Epsilon     = Symbol{id: "<eps>", tag: tagEpsilon}
)

// ID returns the symbol's identifier.
func (s Symbol) ID() string { return s.id }

// IsTerminal reports whether s can never be the LHS of a rule: true for
// ordinary terminals as well as for the eos and epsilon sentinels.
func (s Symbol) IsTerminal() bool {
	return s.tag == tagTerminal || s.tag == tagEOS || s.tag == tagEpsilon
}

// IsNonTerminal reports whether s may be the LHS of a rule.
func (s Symbol) IsNonTerminal() bool {
	return s.tag == tagNonTerminal || s.tag == tagStart
}

// IsStart reports whether s is the <start> sentinel.
func (s Symbol) IsStart() bool { return s.tag == tagStart }

// IsEOS reports whether s is the <eos> sentinel.
func (s Symbol) IsEOS() bool { return s.tag == tagEOS }

// IsEpsilon reports whether s is the <eps> sentinel.
func (s Symbol) IsEpsilon() bool { return s.tag == tagEpsilon }

// Equal reports whether two symbols share an identifier. Per the data
// model, equality is by identifier alone.
func (s Symbol) Equal(o Symbol) bool { return s.id == o.id }

func (s Symbol) String() string { return s.id }

func (s Symbol) isSentinel() bool {
	return s.tag == tagStart || s.tag == tagEOS || s.tag == tagEpsilon
}

// SymbolDecl is a user-facing symbol declaration: an identifier plus a flag
// telling whether the author intends it to be a terminal. This is advisory
// bookkeeping consumed by Grammar validation and the builder; the
// authoritative terminal/non-terminal partition used downstream is
// recomputed by Preprocess from rule-LHS presence: a symbol is a
// non-terminal exactly when some rule's LHS names it, regardless of how
// it was declared.
type SymbolDecl struct {
	ID       string
	Terminal bool
}

func (d SymbolDecl) String() string {
	kind := "non-terminal"
	if d.Terminal {
		kind = "terminal"
	}
	return fmt.Sprintf("%s %q", kind, d.ID)
}
