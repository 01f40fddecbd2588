// SPDX-License-Identifier: MIT

// Package config loads lvltrace settings through viper.
//
// Sources, lowest precedence first:
//   - built-in defaults (SetDefaults)
//   - an optional YAML/TOML/JSON file given by path
//   - LVLTRACE_* environment variables, with "." mapped to "_"
//     (LVLTRACE_CACHE_BACKEND=badger, LVLTRACE_SYNTHESIS_ROUNDS=3)
//
// The result is validated with go-playground/validator struct tags.
package config
