// Package application provides application initialization and dependency wiring.
// It loads the webpack options, renders configs for the CLI and assembles the
// storage, handlers, router, options watcher and HTTP server of the config
// service, keeping the main package focused on CLI parsing and orchestration.
package application
