/*
Package nodeid parses and formats the textual form of a node-graph pointer:
the address of one output slot of one node.

The canonical format is `node[index]`, e.g. `mix[1]`. A bare `node` addresses
output 0.
*/
package nodeid
