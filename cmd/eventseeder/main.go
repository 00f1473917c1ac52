// Command eventseeder generates synthetic GitHub activity events and
// writes them as a CSV artifact for seeding an events table.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/eventseeder/internal/config"
	"github.com/user/eventseeder/internal/generator"
	"github.com/user/eventseeder/internal/report"
	"github.com/user/eventseeder/internal/sink"
	"github.com/user/eventseeder/internal/storage"
	"github.com/user/eventseeder/pkg/logger"
)

var (
	cfgFile    string
	flagCount  int
	flagDays   int
	flagSeed   int64
	flagOutput string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "eventseeder",
	Short: "Synthetic GitHub activity event seeder",
	Long: `eventseeder produces randomized commit, pull request and deploy events
for seeding or testing a downstream events table. Events are written as a
CSV artifact and can optionally be loaded straight into a SQLite database
with the target schema.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate events and write the CSV artifact",
	RunE:  runGenerate,
}

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Print distribution statistics for an existing artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	generateCmd.Flags().IntVar(&flagCount, "count", 1000, "number of events to generate")
	generateCmd.Flags().IntVar(&flagDays, "days", 90, "trailing window length in days")
	generateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (0 = derive from clock)")
	generateCmd.Flags().StringVar(&flagOutput, "output", "test_events.csv", "output CSV path")
	generateCmd.Flags().StringVar(&flagDB, "db", "", "also load events into this SQLite database")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override file and environment settings.
	if cmd.Flags().Changed("count") {
		cfg.Generator.Count = flagCount
	}
	if cmd.Flags().Changed("days") {
		cfg.Generator.WindowDays = flagDays
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = flagSeed
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Path = flagOutput
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = flagDB
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Log.Level == "debug", cfg.Log.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -cfg.Generator.WindowDays)

	gen, err := generator.New(generator.DefaultPools(), cfg.Generator.Seed)
	if err != nil {
		return err
	}

	events, err := gen.Generate(cfg.Generator.Count, start, end)
	if err != nil {
		return err
	}

	logger.Info().Int("count", len(events)).Str("path", cfg.Output.Path).Msg("Writing artifact")
	if err := sink.WriteFile(cfg.Output.Path, events); err != nil {
		return err
	}

	if cfg.Database.Path != "" {
		db, err := storage.NewDatabase(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		store := storage.NewEventStore(db)
		if err := store.SaveEvents(events); err != nil {
			return fmt.Errorf("failed to load events into database: %w", err)
		}
		logger.Info().Int("count", len(events)).Str("path", cfg.Database.Path).Msg("Events loaded into database")
	}

	report.Render(os.Stdout, report.Summarize(events, start, end))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	events, err := sink.ReadFile(args[0])
	if err != nil {
		return err
	}

	var start, end time.Time
	if len(events) > 0 {
		// Events are stored sorted by timestamp.
		start = events[0].Timestamp
		end = events[len(events)-1].Timestamp
	}

	report.Render(os.Stdout, report.Summarize(events, start, end))
	return nil
}
