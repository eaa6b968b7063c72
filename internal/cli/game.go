package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a game and show the scrambled word",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"difficulty": difficulty}
			var result Round

			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "easy", "Difficulty: easy, medium, hard")

	return cmd
}

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Start today's daily challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			if err := client.Post(cmd.Context(), "/api/v1/games/daily", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <answer>",
		Short: "Submit an answer for the current word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"answer": strings.Join(args, " ")}
			var result GuessResult

			if err := client.Post(cmd.Context(), "/api/v1/games/submit", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
