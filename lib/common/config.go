package common

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Engine names accepted by Config.Engine
const (
	EnginePebble = "pebble"
	EngineMaple  = "maple"
)

// Config holds the resolved settings of the tkv command line tool.
type Config struct {
	// DataDir is the store directory, canonicalized by typeddb.ResolvePath on open
	DataDir string

	// Engine selects the storage engine (EnginePebble or EngineMaple)
	Engine string

	// Sync makes pebble fsync its WAL on every write
	Sync bool

	// Logging configuration
	LogLevel string
}

// Validate checks that all fields have a supported value
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data-dir must not be empty")
	}
	switch c.Engine {
	case EnginePebble, EngineMaple:
	default:
		return errors.Newf("invalid engine: %s. must be one of %s, %s", c.Engine, EnginePebble, EngineMaple)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Storage
	addSection("Storage")
	addField("Data Directory", c.DataDir)
	addField("Engine", c.Engine)
	if c.Engine == EnginePebble {
		addField("Sync Writes", fmt.Sprintf("%t", c.Sync))
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
