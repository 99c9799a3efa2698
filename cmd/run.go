package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathexplorer/internal/app"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/learning"
	"github.com/abhisek/mathexplorer/internal/llm"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/store"
)

// openStore opens the database selected by the --db flag.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newServices wires the game services over st.
func newServices(ctx context.Context, st *store.Store) session.Services {
	eventRepo := st.EventRepo()
	board := leaderboard.NewService(st.KV())

	return session.Services{
		Profile: profile.NewService(profile.Deps{
			Players: st.PlayerRepo(),
			Board:   board,
			Events:  eventRepo,
		}),
		Board:     board,
		Rounds:    st.RoundRepo(),
		History:   eventRepo,
		Learning:  learning.NewService(newProvider(ctx, eventRepo), learning.DefaultConfig()),
		Generator: game.NewGenerator(nil),
	}
}

// newProvider builds the LLM provider. Without one, lessons show the
// fallback text.
func newProvider(ctx context.Context, eventRepo store.EventRepo) llm.Provider {
	cfg, err := llm.ResolveConfig(llm.NewKeyStore(""))
	if err == nil {
		var provider llm.Provider
		provider, err = llm.NewProvider(ctx, cfg, eventRepo)
		if err == nil {
			return provider
		}
	}
	fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	fmt.Fprintln(os.Stderr, "Lessons will show a fallback message.")
	return nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	sess := session.New(ctx, newServices(ctx, st))
	return app.Run(sess, opts)
}
