// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a plan file and
// reconstructs its graph, decoupled from any specific entrypoint like a CLI.
package app
