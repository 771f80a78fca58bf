package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cslint/config"
	"cslint/internal/adapter/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached reports",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location, schema and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cacheInfoCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	dbPath := config.CacheDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No cache to clear.")
		return nil
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open report cache: %w", err)
	}
	defer st.Close()

	n, err := st.Len()
	if err != nil {
		return err
	}
	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Printf("Cleared %d cached reports from %s\n", n, dbPath)
	return nil
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	dbPath := config.CacheDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("No cache at %s\n", dbPath)
		return nil
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open report cache: %w", err)
	}
	defer st.Close()

	info, err := st.GetSchemaInfo()
	if err != nil {
		return err
	}
	n, err := st.Len()
	if err != nil {
		return err
	}

	current := store.ComputeConfigHash(GetConfig())
	fmt.Printf("Cache:          %s\n", dbPath)
	fmt.Printf("Schema version: %d (current %d)\n", info.Version, store.CurrentSchemaVersion)
	fmt.Printf("Config hash:    %s", info.ConfigHash)
	if info.ConfigHash != "" && info.ConfigHash != current {
		fmt.Printf(" (stale, current %s)", current)
	}
	fmt.Println()
	fmt.Printf("Reports:        %d\n", n)
	return nil
}
