// Package commands implements the v4cli subcommands: worked examples
// that fetch live pool state, build position manager calldata and
// optionally send it.
package commands
