/*
Package nodegraph evaluates the node graphs that compute property overrides.

Evaluation starts from a set of requested nodes, orders their transitive
input dependencies depth-first (post-order) and computes each node once per
run through its Kind. Kinds are looked up by tag in a Registry. The
built-in kinds are registered in DefaultRegistry.

Cycles among input pointers, pointers to missing nodes or outputs, and
unknown kind tags abort the run with the matching evalerr kind.
*/
package nodegraph
