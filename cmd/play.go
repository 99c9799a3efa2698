package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/app"
	"github.com/abhisek/mathexplorer/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Start a round of a game",
	Long: `Start a round straight away. Games: suma, resta, division,
multiplicacion, secuencias (English aliases like "add" work too).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := game.ParseKind(args[0])
		if err != nil {
			return err
		}

		var difficulty game.Difficulty
		if d, _ := cmd.Flags().GetString("difficulty"); d != "" {
			if difficulty, err = game.ParseDifficulty(d); err != nil {
				return err
			}
		}

		name, _ := cmd.Flags().GetString("name")
		return runApp(cmd, app.Options{Name: name, Play: kind, Difficulty: difficulty})
	},
}

func init() {
	playCmd.Flags().StringP("name", "n", "", "Player name")
	playCmd.Flags().StringP("difficulty", "d", "", "Difficulty: facil, medio, dificil (asks when empty)")
	_ = playCmd.MarkFlagRequired("name")
}
