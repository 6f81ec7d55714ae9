// Package expr parses and evaluates the HCL expressions carried by expression
// nodes.
//
// An expression sees only its node's named inputs as variables and may call
// only the functions in Functions. Calls outside that table are rejected when
// the expression is parsed, before any evaluation happens.
package expr
