/*
Package lr turns a context-free grammar into the data a shift-reduce
parser needs: a canonical item-set graph and the ACTION/GOTO table
derived from it.

Building a grammar

Grammars are assembled with a grammar builder. Clients add rules out of
terminal and non-terminal symbols; a rule with no right-hand side is an
epsilon-production.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()   // S -> A a
    b.LHS("A").N("B").N("D").End()   // A -> B D
    b.LHS("B").T("b").End()          // B -> b
    b.LHS("B").Epsilon()             // B ->
    b.LHS("D").T("d").End()          // D -> d
    b.LHS("D").Epsilon()             // D ->

    g, err := b.Grammar()

Static analysis

Preprocess augments the grammar with an injected start rule and
classifies every symbol as terminal or non-terminal. Analysis then
computes FIRST and FOLLOW sets. FIRST drives canonical LR(1) lookahead
propagation; an LR(0) table reduces on every terminal and uses neither,
and FOLLOW is exposed for inspection but not used by table construction:

    ga, err := lr.Analysis(g)
    first := ga.First(symbol)
    follow := ga.Follow(symbol)

Table construction

BuildGraph runs the canonical-collection algorithm over the analysed
grammar, producing a Graph of States connected by Edges. BuildTable
derives the ACTION/GOTO Table from that graph. It records every
conflict and, if there is any, returns the first one as its error
alongside the table:

    graph, err := lr.BuildGraph(ga, lr.LR1)
    table, err := lr.BuildTable(ga, graph, lr.LR1)
    if err != nil && table != nil && table.HasConflicts() {
        // inspect table.ConflictReport()
    }

The resulting Table is consumed by lr/parse's driver.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) 2024, ctlr contributors
*/
package lr
