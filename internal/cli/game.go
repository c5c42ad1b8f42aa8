package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/queensrush/internal/api/request"
	"github.com/mcoot/queensrush/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameHintsCmd())
	cmd.AddCommand(newGameBotCmd())
	cmd.AddCommand(newGameRevertCmd())
	cmd.AddCommand(newGameTimeoutCmd())
	cmd.AddCommand(newGameRestartCmd())
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameResultCmd())

	return cmd
}

// gameFlags are the settings shared by "game new" and "play"
type gameFlags struct {
	gridSize    int
	timeLimit   int
	onTimeout   string
	vsBot       bool
	botStrategy string
	player1     string
	player2     string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.gridSize, "grid", 0, "Grid size: 6 or 8 (server default if omitted)")
	cmd.Flags().IntVar(&f.timeLimit, "time-limit", -1, "Turn time limit in seconds, 0 disables the timer (server default if omitted)")
	cmd.Flags().StringVar(&f.onTimeout, "on-timeout", "", "Timeout policy: end_game or pass_turn")
	cmd.Flags().BoolVar(&f.vsBot, "bot", false, "Play against the bot")
	cmd.Flags().StringVar(&f.botStrategy, "strategy", "", "Bot strategy: safe or random")
	cmd.Flags().StringVar(&f.player1, "player1", "", "Name of player 1")
	cmd.Flags().StringVar(&f.player2, "player2", "", "Name of player 2")
}

func (f *gameFlags) request() request.CreateGameRequest {
	req := request.CreateGameRequest{
		GridSize:    f.gridSize,
		OnTimeout:   f.onTimeout,
		VsBot:       f.vsBot,
		BotStrategy: f.botStrategy,
	}
	if f.timeLimit >= 0 {
		limit := f.timeLimit
		req.TurnTimeLimitSeconds = &limit
	}
	if f.player1 != "" || f.player2 != "" {
		req.Players = []request.PlayerRequest{{Name: f.player1}, {Name: f.player2}}
	}
	return req
}

func gamePath(id string, suffix string) string {
	return "/api/v1/games/" + url.PathEscape(id) + suffix
}

func newGameNewCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Post("/api/v1/games", flags.request(), &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <id> <player> <row> <col>",
		Short: "Place a queen for a player",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]int, 3)
			for i, name := range []string{"player", "row", "col"} {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid %s: %w", name, err)
				}
				nums[i] = n
			}

			req := request.PlaceRequest{Player: nums[0], Row: nums[1], Col: nums[2]}
			var result response.ActionResponse

			if err := client.Post(gamePath(args[0], "/place"), req, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHintsCmd() *cobra.Command {
	var player int

	cmd := &cobra.Command{
		Use:   "hints <id>",
		Short: "List the cells a player can take without losing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.HintsResponse

			path := gamePath(args[0], "/hints") + "?player=" + strconv.Itoa(player)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
	cmd.Flags().IntVar(&player, "player", 1, "Player to compute hints for")

	return cmd
}

func newGameBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot <id>",
		Short: "Let the bot play its turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.BotMoveResponse

			if err := client.Post(gamePath(args[0], "/bot-move"), nil, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <id>",
		Short: "Undo the bot's last move and let it play elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ActionResponse

			if err := client.Post(gamePath(args[0], "/revert"), nil, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTimeoutCmd() *cobra.Command {
	var ifExpired bool

	cmd := &cobra.Command{
		Use:   "timeout <id>",
		Short: "Report that the active player's turn timer ran out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TimeoutResponse

			path := gamePath(args[0], "/timeout")
			if ifExpired {
				path += "?if_expired=true"
			}
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifExpired, "if-expired", false, "Only apply the timeout if the server's turn timer has expired")

	return cmd
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <id>",
		Short: "Start over with an empty board and the same settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Post(gamePath(args[0], "/restart"), nil, &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gamePath(args[0], "")
			if purge {
				path += "?purge=true"
			}
			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			if purge {
				out.PrintMessage("Game deleted")
			} else {
				out.PrintMessage("Game abandoned")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also delete the game session")

	return cmd
}

func newGameResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Show how the game ended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Result

			if err := client.Get(gamePath(args[0], "/result"), &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newResultsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recently finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ResultsResponse

			if err := client.Get("/api/v1/results?limit="+strconv.Itoa(limit), &result); err != nil {
				return err
			}

			out := NewOutputTo(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")

	return cmd
}
