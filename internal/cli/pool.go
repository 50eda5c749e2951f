package cli

import (
	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Matchmaking pool commands",
	}

	cmd.AddCommand(newPoolJoinCmd())
	cmd.AddCommand(newPoolDisconnectCmd())

	return cmd
}

func newPoolJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking pool and wait for a game",
		Long: `Join the matchmaking pool. The command blocks until enough players
have pooled to start a game, the wait is cancelled by a disconnect, or
the server shuts down.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			// Blocks server-side until a match forms
			if err := client.PostSlow("/api/v1/pool/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPoolDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Leave the pool or the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Ack

			if err := client.Post("/api/v1/pool/disconnect", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Disconnected")
			return nil
		},
	}
}
