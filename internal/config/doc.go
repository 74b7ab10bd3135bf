// Package config owns the midcrack TOML file layout.
//
// Ownership boundary:
// - on-disk keys and their defaults
// - template generation and strict validation
//
// Applying a file onto runtime settings stays in cmd/midcrack.
package config
