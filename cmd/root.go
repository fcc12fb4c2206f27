package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/capacity-planner/capacity-planner/planner"
	"github.com/capacity-planner/capacity-planner/planner/memory"
	"github.com/capacity-planner/capacity-planner/planner/oracle"
)

var (
	// CLI flags shared by all subcommands
	logLevel           string        // Log verbosity level
	dataDir            string        // Directory holding the four reference CSVs
	datasetsConfigPath string        // Optional YAML preset file naming CSV paths
	datasetName        string        // Preset name inside the datasets config
	memoryPath         string        // Path of the persisted outcome log
	oracleName         string        // Scoring oracle binding (stub, gemini)
	oracleModel        string        // Model name for the gemini oracle
	oracleTimeout      time.Duration // Bound on a single oracle call
	outcomeSeed        int64         // Seed for synthetic outcome generation
	successRate        float64       // Synthetic outcome success probability

	// CLI flags for the one-shot plan command
	targetQty   int    // Pieces to produce
	deadlineHrs int    // Hours until the order is due
	partID      string // Part to produce
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "capacity-planner",
	Short: "AI capacity planner assigning production orders to machine-operator pairs",
}

// planCmd runs a single order through the pipeline and prints the recommendation
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan one production order",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		ctx := context.Background()
		p, err := buildPlanner(ctx)
		if err != nil {
			logrus.Fatalf("failed to build planner: %v", err)
		}

		result, err := p.Plan(ctx, planner.PlanRequest{
			TargetQty:   targetQty,
			DeadlineHrs: deadlineHrs,
			PartID:      partID,
		})
		if err != nil {
			logrus.Fatalf("plan failed: %v", err)
		}

		printResult(result)
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildPlanner loads the reference catalog and wires the store, oracle and
// outcome source into a Planner.
func buildPlanner(ctx context.Context) (*planner.Planner, error) {
	paths := catalogPaths()

	catalog, err := planner.LoadCatalog(paths)
	if err != nil {
		return nil, err
	}

	scorer, err := oracle.New(ctx, oracle.Config{
		Name:    oracleName,
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   oracleModel,
		Timeout: oracleTimeout,
	})
	if err != nil {
		return nil, err
	}

	store := memory.NewStore(memoryPath)
	outcome := planner.NewWeightedCoin(successRate, outcomeSeed)
	return planner.New(catalog, store, scorer, outcome), nil
}

// catalogPaths resolves the four CSV paths: a named preset from the datasets
// config when given, otherwise conventional filenames under --data-dir.
func catalogPaths() planner.CatalogPaths {
	if datasetsConfigPath != "" {
		if preset := GetCatalogPaths(datasetsConfigPath, datasetName); preset != nil {
			return *preset
		}
		logrus.Warnf("dataset %q not found in %s, falling back to --data-dir", datasetName, datasetsConfigPath)
	}
	return planner.CatalogPaths{
		PartCycleTime:       filepath.Join(dataDir, "part_cycle_time.csv"),
		PlanData:            filepath.Join(dataDir, "plan_data.csv"),
		MachineAvailability: filepath.Join(dataDir, "machine_availability.csv"),
		OperatorEfficiency:  filepath.Join(dataDir, "operator_efficiency.csv"),
	}
}

func printResult(result planner.PlanResult) {
	fmt.Printf("\n AI AGENT RECOMMENDATION\n\n")

	if rec := result.Recommendation; rec != nil {
		fmt.Printf("Machine        : %s\n", rec.MachineID)
		fmt.Printf("Operator       : %s (%s)\n", rec.OperatorName, rec.OperatorID)
		fmt.Printf("Estimated Time : %v hrs\n", rec.FinalTime)
		fmt.Printf("Efficiency     : %v\n", rec.OperatorEfficiency)
		fmt.Printf("Risk           : %v\n", rec.Risk)
	} else {
		fmt.Println("No feasible recommendation found.")
	}

	fmt.Printf("\n AI EXPLANATION \n\n")
	fmt.Println(result.Explanation)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory containing the four reference CSV files")
	rootCmd.PersistentFlags().StringVar(&datasetsConfigPath, "datasets-config", "", "YAML file with named dataset presets")
	rootCmd.PersistentFlags().StringVar(&datasetName, "dataset", "default", "Preset name inside --datasets-config")
	rootCmd.PersistentFlags().StringVar(&memoryPath, "memory-path", "memory.json", "Path of the persisted outcome log")

	// Oracle configs
	rootCmd.PersistentFlags().StringVar(&oracleName, "oracle", "stub", "Scoring oracle (stub, gemini)")
	rootCmd.PersistentFlags().StringVar(&oracleModel, "oracle-model", "", "Model name for the gemini oracle")
	rootCmd.PersistentFlags().DurationVar(&oracleTimeout, "oracle-timeout", 30*time.Second, "Bound on a single oracle call")

	// Synthetic outcome configs
	rootCmd.PersistentFlags().Int64Var(&outcomeSeed, "seed", 42, "Seed for synthetic outcome generation")
	rootCmd.PersistentFlags().Float64Var(&successRate, "success-rate", planner.DefaultSuccessRate, "Synthetic outcome success probability")

	planCmd.Flags().IntVar(&targetQty, "target-qty", 500, "Pieces to produce")
	planCmd.Flags().IntVar(&deadlineHrs, "deadline-hrs", 72, "Hours until the order is due")
	planCmd.Flags().StringVar(&partID, "part-id", "P1001", "Part to produce")

	// Attach `plan` as a subcommand to `root`
	rootCmd.AddCommand(planCmd)
}
