package kv

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
)

var (
	putCmd = &cobra.Command{
		Use:   "put [key] [value]",
		Short: "Stores the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, key, err := prefixAndKey(args[0])
			if err != nil {
				return err
			}
			value, err := util.ParseBytes(args[1], useHex())
			if err != nil {
				return err
			}
			if err := store.PrefixStore(prefix, key, value); err != nil {
				return err
			}
			fmt.Println("put successfully")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, key, err := prefixAndKey(args[0])
			if err != nil {
				return err
			}
			value, found, err := store.PrefixRetrieve(prefix, key)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%v, value=%s\n", args[0], found, util.FormatBytes(value, useHex()))
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, key, err := prefixAndKey(args[0])
			if err != nil {
				return err
			}
			if err := store.PrefixDelete(prefix, key); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Lists all entries of the prefix given with --prefix in key order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := prefixArg()
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")

			it, err := store.PrefixIterator(prefix)
			if err != nil {
				return err
			}
			defer it.Close()

			count := 0
			for it.Next() {
				if limit > 0 && count >= limit {
					break
				}
				fmt.Printf("%s = %s\n", util.FormatBytes(it.Key(), useHex()), util.FormatBytes(it.Value(), useHex()))
				count++
			}
			if err := it.Error(); err != nil {
				return err
			}
			fmt.Printf("%d entries\n", count)
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(storeConf.String())

			info, err := store.Info()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints the operation counters of this process in Prometheus format",
		Long: util.WrapString("Prints the operation counters in Prometheus text format. " +
			"Counters are kept per process, so this is mostly useful after perf or in scripts that run several operations."),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics.WritePrometheus(cmd.OutOrStdout(), false)
			return nil
		},
	}
)

func init() {
	scanCmd.Flags().Int("limit", 0, util.WrapString("Maximum number of entries to print (0 = all)"))
}

// prefixAndKey parses the --prefix flag and a key argument
func prefixAndKey(arg string) ([]byte, []byte, error) {
	prefix, err := prefixArg()
	if err != nil {
		return nil, nil, err
	}
	key, err := util.ParseBytes(arg, useHex())
	if err != nil {
		return nil, nil, err
	}
	return prefix, key, nil
}
