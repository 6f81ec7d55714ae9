// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, decoding blocks
// into the schema structs and translating them into a document.Snapshot.
package hcl
