// Package config provides configuration loading for golden.
//
// Settings come from three layers, later layers winning:
//
//   - Built-in defaults (Default), which reproduce a plain run from the
//     fixture root: tool at ../target/debug/rev, flag -f, benchmark skipped.
//   - An optional golden.toml in the fixture root, or the file named by --config.
//   - Command-line flags, applied by the cmd package.
//
// Example golden.toml:
//
//	language  = "Rev"
//	tool      = "cargo run -q --bin rev --"
//	file_flag = "-f"
//	skip      = ["benchmark", "wip"]
//	jobs      = 4
//	timeout   = "30s"
//	no_color  = false
//	journal   = "runs.jsonl"
//
// Unknown keys are rejected so a typo cannot silently fall back to a default.
package config
