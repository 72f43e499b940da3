// Package database opens SQL connections for the user store backends and
// applies the embedded goose migrations that create their schema.
package database
