// Package main hosts the evtsift CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// runs, journal queries, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on flag surface and output rendering.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
