package kv

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/codec"
	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/typeddb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the local store",
		Long:    util.WrapString("Runs put, get, delete, scan and mixed benchmarks against the configured store. All keys are written below the prefix __perf/ and removed afterwards."),
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = []byte("__perf/")
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the put-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	if perfKeySpread <= 0 {
		return fmt.Errorf("keys must be positive, got %d", perfKeySpread)
	}
	return nil
}

// perfBench describes one benchmark. With prepare the keys are stored before the run.
type perfBench struct {
	name    string
	prepare bool
	op      func(key []byte, counter int) error
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for tKV")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(storeConf.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	largeValue := make([]byte, perfLargeValueSizeKB*1024)

	benches := []perfBench{
		{name: "put", op: func(key []byte, _ int) error {
			return store.StoreEncodable(perfKeyPrefix, key, codec.String("test"))
		}},
		{name: "put-large", op: func(key []byte, _ int) error {
			return store.StoreEncodable(perfKeyPrefix, key, codec.Bytes(largeValue))
		}},
		{name: "get", prepare: true, op: func(key []byte, _ int) error {
			_, _, err := typeddb.RetrieveDecodable[codec.String](store, perfKeyPrefix, key)
			return err
		}},
		{name: "get-miss", op: func(key []byte, _ int) error {
			_, _, err := typeddb.RetrieveDecodable[codec.String](store, perfKeyPrefix, key)
			return err
		}},
		{name: "delete", prepare: true, op: func(key []byte, _ int) error {
			return store.PrefixDelete(perfKeyPrefix, key)
		}},
		{name: "scan", prepare: true, op: func(_ []byte, _ int) error {
			return scanAll()
		}},
		{name: "mixed", prepare: true, op: func(key []byte, counter int) error {
			switch counter % 4 {
			case 0: // put
				return store.StoreEncodable(perfKeyPrefix, key, codec.String("test"))
			case 1: // get
				_, _, err := typeddb.RetrieveDecodable[codec.String](store, perfKeyPrefix, key)
				return err
			case 2: // delete
				return store.PrefixDelete(perfKeyPrefix, key)
			default: // scan
				return scanAll()
			}
		}},
	}

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	for _, bench := range benches {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(bench.name) {
				return
			}

			// prepare keys
			getKey, iter := getKeys(bench.name)

			if bench.prepare {
				iter(func(k []byte) {
					if err := store.StoreEncodable(perfKeyPrefix, k, codec.String("test")); err != nil {
						cliLogger.Errorf("(%s) - error storing key: %v", bench.name, err)
					}
				})
			}

			// cleanup
			b.Cleanup(func() {
				iter(func(k []byte) {
					if err := store.PrefixDelete(perfKeyPrefix, k); err != nil {
						cliLogger.Errorf("(%s) - error deleting key: %v", bench.name, err)
					}
				})
			})

			b.SetParallelism(perfNumThreads)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				counter := 0
				for pb.Next() {
					if err := bench.op(getKey(counter), counter); err != nil {
						cliLogger.Errorf("(%s) - error performing operation: %v", bench.name, err)
					}
					counter++
				}
			})
		})

		results[bench.name] = result
		printResult(bench.name, result)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, storeConf); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// scanAll iterates over all benchmark keys
func scanAll() error {
	it, err := store.PrefixIterator(perfKeyPrefix)
	if err != nil {
		return err
	}
	for it.Next() {
		_ = it.Value()
	}
	if err := it.Error(); err != nil {
		_ = it.Close()
		return err
	}
	return it.Close()
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) []byte, func(func([]byte))) {
	keys := make([][]byte, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = []byte(fmt.Sprintf("%s-%d", prefix, i))
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) []byte {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func([]byte)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.Config) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Engine", "Sync", "DataDir",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			config.Engine,
			strconv.FormatBool(config.Sync),
			config.DataDir,
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return writer.Error()
}
