package util

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
	"github.com/ValentinKolb/tKV/lib/db/engines/pebble"
	"github.com/ValentinKolb/tKV/lib/typeddb"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by tkv (e.g. TKV_DATA_DIR)
	EnvPrefix = "tkv"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// SetupStoreFlags adds the store flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "data-dir"
	cmd.PersistentFlags().String(key, "data", WrapString("Directory of the store. The parent directory must exist, the directory itself is created on first use"))

	key = "engine"
	cmd.PersistentFlags().String(key, common.EnginePebble, WrapString("Storage engine to use (pebble, maple). maple keeps all data in memory and loses it on exit"))

	key = "sync"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether pebble should fsync its write ahead log on every write"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// InitConfig initializes configuration from .env files and environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the store configuration from viper and validates it
func GetConfig() (*common.Config, error) {
	conf := &common.Config{
		DataDir:  viper.GetString("data-dir"),
		Engine:   strings.ToLower(viper.GetString("engine")),
		Sync:     viper.GetBool("sync"),
		LogLevel: viper.GetString("log-level"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// OpenDB opens the store described by conf
func OpenDB(conf *common.Config) (*typeddb.DB, error) {
	var engine typeddb.EngineFactory
	switch conf.Engine {
	case common.EnginePebble:
		engine = typeddb.PebbleEngine(&pebble.Options{
			Sync:   conf.Sync,
			Logger: logger.GetLogger("engine"),
		})
	case common.EngineMaple:
		engine = typeddb.MapleEngine(maple.DefaultOptions())
	default:
		return nil, errors.Newf("invalid engine %s", conf.Engine)
	}
	return typeddb.Open(conf.DataDir, typeddb.WithEngine(engine))
}

// --------------------------------------------------------------------------
// Argument parsing
// --------------------------------------------------------------------------

// ParseBytes converts a command line argument to bytes. With asHex the argument
// is hex decoded (an optional 0x prefix is accepted), otherwise its raw bytes are used.
func ParseBytes(arg string, asHex bool) ([]byte, error) {
	if !asHex {
		return []byte(arg), nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(arg, "0x"), "0X"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex argument %q", arg)
	}
	return b, nil
}

// FormatBytes renders bytes for output, as hex or as a quoted Go string
func FormatBytes(b []byte, asHex bool) string {
	if asHex {
		return "0x" + hex.EncodeToString(b)
	}
	return strconv.Quote(string(b))
}
