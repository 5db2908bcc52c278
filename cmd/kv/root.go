package kv

import (
	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/typeddb"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	store     *typeddb.DB
	storeConf *common.Config

	cliLogger = logger.GetLogger("cli")

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:                "kv",
		Short:              "Perform key-value operations on a local store",
		PersistentPreRunE:  setupStore,
		PersistentPostRunE: closeStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add store flags to the KV command
	util.SetupStoreFlags(KeyValueCommands)

	key := "prefix"
	KeyValueCommands.PersistentFlags().String(key, "", util.WrapString("Prefix (table) the keys belong to. It is prepended to every key without a separator"))

	key = "hex"
	KeyValueCommands.PersistentFlags().Bool(key, false, util.WrapString("Read prefixes, keys and values as hex and print them as hex"))

	// Add subcommands
	KeyValueCommands.AddCommand(putCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(scanCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(statsCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupStore reads the configuration, initializes the loggers and opens the store
func setupStore(cmd *cobra.Command, _ []string) error {
	// a store left open by a failed command is released first
	if err := closeStore(cmd, nil); err != nil {
		return err
	}

	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	conf, err := util.GetConfig()
	if err != nil {
		return err
	}

	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	cliLogger.Debugf("Configuration: %s", conf.String())

	store, err = util.OpenDB(conf)
	if err != nil {
		return err
	}
	storeConf = conf
	return nil
}

// closeStore releases the store opened by setupStore
func closeStore(_ *cobra.Command, _ []string) error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func useHex() bool {
	return viper.GetBool("hex")
}

// prefixArg returns the --prefix flag as bytes
func prefixArg() ([]byte, error) {
	return util.ParseBytes(viper.GetString("prefix"), useHex())
}
