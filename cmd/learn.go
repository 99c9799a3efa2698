package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/learning"
)

var learnCmd = &cobra.Command{
	Use:   "learn <topic>",
	Short: "Print a lesson for a topic (suma, resta)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := learning.ParseTopic(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		svc := learning.NewService(newProvider(ctx, st.EventRepo()), learning.DefaultConfig())
		res := svc.FetchExplanation(ctx, topic)
		if res.Err != learning.ErrNone {
			fmt.Fprintf(os.Stderr, "warning: lesson unavailable (%s)\n", res.Err)
		}

		fmt.Println(topic.Title())
		fmt.Println()
		for _, seg := range learning.Segments(res.TextOr(learning.Fallback)) {
			fmt.Print(seg.Text)
		}
		fmt.Println()
		return nil
	},
}
