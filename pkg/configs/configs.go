// Package configs provides the embedded default configuration file.
package configs

import _ "embed"

// DefaultConfigBytes is the default config.yml written by `veinminer config`.
//
//go:embed config.yml
var DefaultConfigBytes []byte
