package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Delete a player's profile",
	Long: `Delete a player's profile. With --fresh the profile is kept but
reset to level 1 with no points or achievements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := player.CleanName(args[0])
		if err != nil {
			return err
		}
		fresh, _ := cmd.Flags().GetBool("fresh")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		players := st.PlayerRepo()
		if _, found, err := players.Load(cmd.Context(), name); err != nil {
			return fmt.Errorf("load profile: %w", err)
		} else if !found {
			return fmt.Errorf("no profile named %q", name)
		}

		if fresh {
			svc := profile.NewService(profile.Deps{Players: players})
			if _, err := svc.Reset(cmd.Context(), name); err != nil {
				return fmt.Errorf("reset profile: %w", err)
			}
			fmt.Printf("Profile %q reset to level 1.\n", name)
			return nil
		}

		if err := players.Delete(cmd.Context(), name); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		fmt.Printf("Profile %q deleted.\n", name)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("fresh", false, "Keep the profile but start it over")
}
