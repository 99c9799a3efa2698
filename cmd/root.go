package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/app"
	"github.com/abhisek/mathexplorer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathexplorer",
	Short: "Arithmetic arcade for kids",
	Long:  "Math Explorer is a terminal arcade where children practice arithmetic, earn achievements and climb the leaderboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return runApp(cmd, app.Options{Name: name})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHEXPLORER_DB env var)")
	rootCmd.Flags().String("name", "", "Log in as this player and skip the welcome screen")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory. A missing file is fine.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHEXPLORER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
