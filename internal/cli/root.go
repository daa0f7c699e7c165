// Package cli implements the ffind command-line interface, a development
// harness for the matching engine. It reads newline-delimited candidates
// from a file or stdin, runs a query through the library exactly the way an
// interactive picker would, and prints the ranked results with highlights.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	maxResults int
	smartCase  bool
	jobs       int
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ffind",
	Short: "Fuzzy-match a query against a candidate list",
	Long: `ffind runs the fuzzyfind matching engine from the command line.

Candidates are read one per line from a file argument or stdin. Prefix the
query with '!' to keep only candidates that do NOT contain it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&maxResults, "max-results", "n", 50, "maximum number of results")
	rootCmd.PersistentFlags().BoolVar(&smartCase, "smart-case", true, "case-sensitive only when the query has an uppercase letter")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "parallel workers for the scan")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// readLines collects candidate lines from the named file, or stdin when
// name is "-" or empty. Blank lines are skipped.
func readLines(name string) ([]string, error) {
	var r io.Reader = os.Stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open candidate file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return lines, nil
}
