// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render lifecycle (load a document,
// evaluate one composition frame, write the result as JSON), decoupled from
// any specific entrypoint like a CLI.
package app
