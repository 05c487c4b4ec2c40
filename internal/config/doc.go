// Package config loads typepad settings.
//
// Settings come from, in increasing priority:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file chosen by extension (.toml, .yaml, .yml)
//  3. TYPEPAD_* environment variables (ApplyEnv)
//  4. Command line flags, applied by the caller
//
// A missing file is not an error; the defaults are used. Unknown keys are
// rejected so typos surface as a ParseError with a line number.
//
// # Example
//
//	[font]
//	backend = "gotext"
//	size = 16.0
//	fallbacks = ["gomono"]
//
//	[layout]
//	width = 640
//	margin = 10
//	locale = "en-US"
//
//	[colors]
//	background = "#cccccc"
//	caret = "#ff0000"
//
//	[log]
//	level = "debug"
package config
