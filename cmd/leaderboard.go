package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the top scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := leaderboard.NewService(st.KV()).Top(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load leaderboard: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("The leaderboard is empty.")
			return nil
		}

		fmt.Printf("%4s  %-12s  %6s\n", "#", "Player", "Score")
		fmt.Println(strings.Repeat("─", 26))
		for i, e := range entries {
			fmt.Printf("%4d  %-12s  %6d\n", i+1, e.PlayerName, e.Score)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", leaderboard.MaxEntries, "Number of entries to show")
}
