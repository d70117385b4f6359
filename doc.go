/*
Package ctlr is a parser-generator toolbox: given a context-free grammar
written as BNF-style production rules, it builds a canonical LR(0) or
LR(1) parsing table and drives a shift-reduce parse over a caller-supplied
token stream, invoking caller-supplied reducers to materialize an AST.

Package structure:

■ lr: grammar intake, preprocessing, FIRST/FOLLOW, the canonical item-set
graph, and ACTION/GOTO table construction.

■ lr/iteratable: a destructive, iterable set used for item-set closure.

■ lr/sparse: a sparse integer matrix used to back ACTION/GOTO tables.

■ lr/parse: the shift-reduce driver, token-source and reducer protocols.

The root package holds the few types shared across all of the above: the
Token contract a caller's scanner must satisfy, and Position, used to
attach an optional line/column to an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) 2024, ctlr contributors
*/
package ctlr
