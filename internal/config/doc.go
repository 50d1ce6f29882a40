// Package config loads runtime settings for the fencing-results tools.
//
// Settings are layered from low to high precedence: built-in defaults, an
// optional YAML file named by FENCING_CONFIG, then FENCING_* environment
// variables. Command-line flags are applied on top by the cli package.
package config
