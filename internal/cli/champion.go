package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newChampionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "champion",
		Short: "Champion catalog commands",
	}

	cmd.AddCommand(newChampionListCmd())
	cmd.AddCommand(newChampionSearchCmd())
	cmd.AddCommand(newChampionGetCmd())

	return cmd
}

func newChampionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all champions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []SearchResult

			if err := client.Get("/api/v1/champions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(SearchResultList(result))
			return nil
		},
	}
}

func newChampionSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search champions by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []SearchResult

			if err := client.Get("/api/v1/champions/search?q="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(SearchResultList(result))
			return nil
		},
	}
}

func newChampionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <champion-id>",
		Short: "Show champion details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Champion

			if err := client.Get("/api/v1/champions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
