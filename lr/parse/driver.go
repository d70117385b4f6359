/*
Package parse implements the shift-reduce driver that runs a lr.Table
against a caller-supplied token stream, invoking a caller-supplied Reducer
to build whatever AST representation the caller wants. The stack carries
a ctlr.AST value per entry, threaded through Shift/Reduce, so callers are
free to build any tree shape rather than a fixed payload, as long as every
node reports its own symbol id.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) 2024, ctlr contributors
*/
package parse

import (
	"errors"
	"io"
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ctlr-go/ctlr"
	"github.com/ctlr-go/ctlr/lr"
)

func tracer() tracing.Trace {
	return tracing.Select("ctlr.parse")
}

// TokenSource feeds the driver one token at a time. Next returns io.EOF
// (wrapped or bare, checked with errors.Is) once the input is exhausted;
// the driver then synthesizes the end-of-stream symbol itself, so callers
// never need to emit an explicit <eos> token.
type TokenSource interface {
	Next() (ctlr.Token, error)
}

// Reducer is the user-supplied protocol for turning the parse into an AST
// (or any other accumulated value). Shift converts a raw token into the
// value pushed for it; Reduce combines the values of a rule's RHS (in
// left-to-right order, one per RHS symbol) into the value pushed for its
// LHS. The augmented start rule <start> -> S <eos> is reduced on Accept
// with a single value, S's: <eos> is never shifted, so it has none.
// Every value returned must report its own symbol id via ctlr.AST;
// the driver checks it against the table before trusting it.
type Reducer interface {
	Shift(tok ctlr.Token) (ctlr.AST, error)
	Reduce(rule *lr.Rule, rhsValues []ctlr.AST) (ctlr.AST, error)
}

// stackitem pairs the state a shift/goto landed on with the symbol that
// reached it and the value a Reducer produced for that symbol.
type stackitem struct {
	state    int
	symbolID string
	value    ctlr.AST
}

// Parser drives a shift-reduce parse over a lr.Table. Construct with
// NewParser and reuse it across many Parse calls; it carries no state
// between them.
type Parser struct {
	table   *lr.Table
	grammar *lr.PreparedGrammar
}

// NewParser builds a driver for table, whose ACTION/GOTO entries were
// derived from grammar.
func NewParser(table *lr.Table, grammar *lr.PreparedGrammar) *Parser {
	return &Parser{table: table, grammar: grammar}
}

// Parse runs the shift-reduce loop to completion, returning the value the
// Reducer produced for the augmented start rule (symbol <start>) on success.
func (p *Parser) Parse(src TokenSource, red Reducer) (ctlr.AST, error) {
	stack := make([]stackitem, 1, 64)
	stack[0] = stackitem{state: 0}

	tok, atEOS, err := p.nextToken(src)
	if err != nil {
		return nil, err
	}

	for {
		top := stack[len(stack)-1]
		symbolID := lr.EndOfStream.ID()
		if !atEOS {
			symbolID = tok.SymbolID()
		}

		act, err := p.table.Action(top.state, symbolID)
		if err != nil {
			pos := ctlr.Position{}
			if !atEOS {
				pos = tok.Pos()
			}
			return nil, annotate(err, pos)
		}

		switch act.Kind {
		case lr.Accept:
			startRule, err := p.grammar.Rule(0)
			if err != nil {
				return nil, err
			}
			val, err := red.Reduce(startRule, []ctlr.AST{top.value})
			if err != nil {
				return nil, &lr.Error{Kind: lr.Custom, Inner: err}
			}
			if val.SymbolID() != lr.StartSymbol.ID() {
				return nil, &lr.Error{Kind: lr.UnexpectedSymbol, Got: val.SymbolID(), Expected: []string{lr.StartSymbol.ID()}}
			}
			return val, nil

		case lr.Shift:
			val, err := red.Shift(tok)
			if err != nil {
				return nil, &lr.Error{Kind: lr.Custom, Pos: tok.Pos(), Inner: err}
			}
			stack = append(stack, stackitem{state: act.State, symbolID: symbolID, value: val})
			tok, atEOS, err = p.nextToken(src)
			if err != nil {
				return nil, err
			}

		case lr.Reduce:
			n := len(act.Rule.RHS)
			values := make([]ctlr.AST, n)
			handle := stack[len(stack)-n:]
			for i, it := range handle {
				expected := act.Rule.RHS[i]
				if it.value.SymbolID() != expected.ID() {
					return nil, &lr.Error{Kind: lr.UnexpectedSymbol, Got: it.value.SymbolID(), Expected: []string{expected.ID()}}
				}
				values[i] = it.value
			}
			stack = stack[:len(stack)-n]

			val, err := red.Reduce(act.Rule, values)
			if err != nil {
				pos := ctlr.Position{}
				if !atEOS {
					pos = tok.Pos()
				}
				return nil, &lr.Error{Kind: lr.Custom, Pos: pos, Inner: err}
			}
			lhsID := act.Rule.LHS.ID()
			if val.SymbolID() != lhsID {
				return nil, &lr.Error{Kind: lr.UnexpectedSymbol, Got: val.SymbolID(), Expected: []string{lhsID}}
			}

			back := stack[len(stack)-1]
			nextState, ok := p.table.Goto(back.state, lhsID)
			if !ok {
				return nil, &lr.Error{Kind: lr.UnexpectedSymbol, Got: lhsID, Message: "no GOTO for " + lhsID + " from state " + strconv.Itoa(back.state)}
			}
			stack = append(stack, stackitem{state: nextState, symbolID: lhsID, value: val})

		default:
			return nil, &lr.Error{Kind: lr.UnexpectedSymbol, Got: symbolID}
		}
	}
}

// nextToken pulls the next token from src, translating io.EOF into the
// synthesized end-of-stream marker the ACTION table indexes under
// lr.EndOfStream's id.
func (p *Parser) nextToken(src TokenSource) (ctlr.Token, bool, error) {
	tok, err := src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		}
		return nil, false, &lr.Error{Kind: lr.Custom, Inner: err}
	}
	tracer().Debugf("got token %q", tok.SymbolID())
	return tok, false, nil
}

func annotate(err error, pos ctlr.Position) error {
	var lrErr *lr.Error
	if errors.As(err, &lrErr) && lrErr.Pos.IsZero() {
		lrErr.Pos = pos
	}
	return err
}
