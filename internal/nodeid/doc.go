/*
Package nodeid parses the operator identifiers used as keys of a JSON query
plan.

The engine names every operator `MM-OO`: the major fragment number and the
operator number inside that fragment, both zero-padded, e.g. `00-03` or
`02-11`. Keys may arrive wrapped in quote characters.

This package centralizes parsing and ordering of these identifiers so that
graph construction visits operators in a stable, plan-like order.
*/
package nodeid
