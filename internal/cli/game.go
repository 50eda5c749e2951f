package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Gameplay commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameWordCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameSnapshot

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <word>",
		Short: "Submit the next word of the story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			if word == "" {
				return fmt.Errorf("word must not be empty")
			}

			req := map[string]string{"word": word}
			var result JoinResult

			if err := client.Post("/api/v1/game/word", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
