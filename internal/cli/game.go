package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameGuessesCmd())
	cmd.AddCommand(newGameKeyCmd())
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameHistoryCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var kind, mode string
	var bonus bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new round",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"kind":  kind,
				"mode":  mode,
				"bonus": bonus,
			}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "champion", "Round kind: champion, ability")
	cmd.Flags().StringVar(&mode, "mode", "medium", "Difficulty: easy, medium, hard")
	cmd.Flags().BoolVar(&bonus, "bonus", false, "Play a bonus round for extra points")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show round state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <game-id> <champion-id>",
		Short: "Submit a champion guess",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"champion_id": args[1]}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/guesses", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guesses <game-id>",
		Short: "List guesses made this round",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionGuesses

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/guesses", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <game-id> <ability-key>",
		Short: "Name the ability slot after winning an ability round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"key": args[1]}
			var result AbilityKeyResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/ability-key", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <game-id>",
		Short: "Abandon an in-progress round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Round abandoned")
			return nil
		},
	}
}

func newGameHistoryCmd() *cobra.Command {
	var kind string
	var page int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HistoryPage

			path := fmt.Sprintf("/api/v1/players/me/history?kind=%s&page=%d", url.QueryEscape(kind), page)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "champion", "Round kind: champion, ability")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")

	return cmd
}
