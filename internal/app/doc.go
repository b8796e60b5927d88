// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a table,
// evaluates it and prints the results, decoupled from the CLI entrypoint.
package app
