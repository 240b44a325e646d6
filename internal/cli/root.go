package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command; running it with no subcommand
// executes the full analysis pipeline
var rootCmd = &cobra.Command{
	Use:   "macroscope",
	Short: "Macroscope - macronutrient profiling for recipe datasets",
	Long: `Macroscope ingests a recipe dataset (CSV), cleans it, aggregates
macronutrient statistics per diet group, ranks recipes and diets, and
exports summary tables, JSON documents, charts, and an XLSX workbook.

Rows that fail validation are rejected and counted, never silently
repaired; the run summary always shows how much data was dropped.

Running macroscope without a subcommand executes the full pipeline:

  macroscope --input All_Diets.csv --output-dir reports
  INPUT_PATH=All_Diets.csv OUTPUT_DIR=reports macroscope`,
	Args:          cobra.NoArgs,
	RunE:          runReport,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Macroscope.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("macroscope v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.macroscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.macroscope")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MACROSCOPE_*
	viper.SetEnvPrefix("MACROSCOPE")
	viper.AutomaticEnv()

	// The canonical dataset variables also work without the prefix.
	_ = viper.BindEnv("input.path", "MACROSCOPE_INPUT_PATH", "INPUT_PATH")
	_ = viper.BindEnv("output.dir", "MACROSCOPE_OUTPUT_DIR", "OUTPUT_DIR")

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
