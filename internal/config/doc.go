// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to settings while keeping configuration details out of
// business logic.
package config
