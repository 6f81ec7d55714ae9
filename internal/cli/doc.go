// Package cli builds the framegrid command line and translates it into an
// app.Config.
package cli
