// Package cli implements the interactive storefront client: a small REPL
// over the session manager, catalog reader, cart aggregate, and checkout
// orchestrator. All rendering goes through the ui.Notifier collaborator.
package cli
