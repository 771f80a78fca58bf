package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cslint/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "cslint",
	Short: "C# style linter - naming, length and comment checks without a parser",
	Long: `cslint tokenizes C# sources and walks the token stream with a scope-aware
scanner to report naming and length problems, physical line statistics and
comments with their surrounding context.

Example usage:
  cslint lint .                  # Lint the current directory
  cslint lint src/Foo.cs --json  # Lint one file, JSON report
  cslint comments .              # List comments with context
  cslint cache clear             # Drop cached reports`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cslint.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
