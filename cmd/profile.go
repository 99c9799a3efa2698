package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Show a player's profile and achievements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := player.CleanName(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := profile.NewService(profile.Deps{Players: st.PlayerRepo()})
		p, found, err := svc.Load(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if !found {
			return fmt.Errorf("no profile named %q", name)
		}

		rounds, err := st.EventRepo().QueryRounds(cmd.Context(), name, store.QueryOpts{Limit: 5})
		if err != nil {
			return fmt.Errorf("query rounds: %w", err)
		}

		printProfile(p, svc.Today())
		printRecentRounds(rounds)
		return nil
	},
}

func printProfile(p player.State, today string) {
	fmt.Printf("Player:    %s\n", p.Name)
	fmt.Printf("Level:     %d (%d/%d to next)\n", p.Level, p.Progress, player.PointsPerLevel)
	fmt.Printf("Points:    %d\n", p.Points)
	fmt.Printf("Games:     %d played, %d won, %d lost\n", p.GamesPlayed, p.Wins, p.Losses)

	switch {
	case p.LastChallengeDate != today || p.ChallengeGame == "":
		fmt.Println("Challenge: none assigned today")
	case p.ChallengeCompleted:
		fmt.Printf("Challenge: %s (completed)\n", p.ChallengeGame.DisplayName())
	default:
		fmt.Printf("Challenge: %s (pending)\n", p.ChallengeGame.DisplayName())
	}

	fmt.Println()
	fmt.Printf("Achievements (%d/%d)\n", p.Achievements.UnlockedCount(), len(achievements.AllIDs()))
	fmt.Println(strings.Repeat("─", 60))
	for _, d := range achievements.Definitions() {
		prog := p.Achievements[d.ID]
		mark := " "
		if prog.Unlocked {
			mark = "✓"
		}
		fmt.Printf("%s %-24s %4d/%-4d %s\n", mark, d.Name, min(prog.Current, d.Target), d.Target, d.Description)
	}
}

func printRecentRounds(rounds []store.RoundEvent) {
	if len(rounds) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent rounds")
	fmt.Println(strings.Repeat("─", 60))
	for _, r := range rounds {
		result := "loss"
		if r.Win {
			result = "win"
		}
		fmt.Printf("%-16s  %-14s  %-8s  %4d  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.GameKind, r.Difficulty, r.FinalScore, result)
	}
}
