// Package config defines the format-agnostic Loader interface the application
// uses to obtain a document.Snapshot from files on disk.
//
// Concrete implementations, such as for HCL, are provided in separate
// packages.
package config
