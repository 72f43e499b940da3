package config

// Store driver names accepted by StoreConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	// "*" allows any origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"min=1,dive,required"`
}

// StoreConfig selects the user store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres sqlite"`
	// SeedFile is an optional YAML file of users added at startup.
	SeedFile string `mapstructure:"seed_file" validate:"omitempty,file"`
}

// DatabaseConfig contains SQL backend settings. URL is required unless the
// store driver is memory. For sqlite it is a file path or ":memory:".
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// UsesDatabase reports whether the configured store needs a SQL database.
func (c *Config) UsesDatabase() bool {
	return c.Store.Driver != DriverMemory
}
