/*
Package iteratable implements an iteratable container data structure.

Set is a special-purpose set type, suitable mainly for implementing
algorithms around item-set closures and similar worklist-style fixed-point
computations, where "keep iterating while new elements keep appearing" is
the natural way to describe the algorithm.

Unusually, Union is destructive: it mutates and returns the receiver rather
than allocating a third set, matching the closure idiom this package exists
for (`closure.Union(additions)`). Difference is not: it returns a fresh set
of the elements only the receiver holds, since the typical caller still
needs to iterate the receiver unchanged afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) 2024, ctlr contributors

*/
package iteratable
