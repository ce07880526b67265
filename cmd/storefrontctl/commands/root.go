// Package commands implements the storefrontctl admin CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront_backend/internal/platform/db"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefrontctl",
	Short: "Administration tool for the storefront backend",
	Long: `storefrontctl runs maintenance tasks against the storefront database.

Connection settings are read from DB_* environment variables (and .env).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// openDB is replaced in tests.
var openDB = func() (*gorm.DB, error) {
	return db.OpenDB(db.LoadConfigFromEnv())
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(migrateCmd, seedCmd, createUserCmd)
}

// withDB opens the database, runs fn and closes the pool.
func withDB(fn func(gdb *gorm.DB) error) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gdb) }()
	return fn(gdb)
}
