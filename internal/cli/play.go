package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/queensrush/internal/api/request"
	"github.com/mcoot/queensrush/internal/api/response"
)

const playHelp = `Commands:
  <row> <col>   place a queen
  hint          show the cells you can take without losing
  revert        take back the bot's last move
  restart       start over with an empty board
  quit          leave the game`

func newPlayCmd() *cobra.Command {
	var (
		flags    gameFlags
		gameID   string
		botDelay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game in the terminal",
		Long: `Play a game turn by turn. Creates a new game unless --game is given.

` + playHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var game response.GameState
			if gameID != "" {
				if err := client.Get(gamePath(gameID, ""), &game); err != nil {
					return err
				}
			} else if err := client.Post("/api/v1/games", flags.request(), &game); err != nil {
				return err
			}

			s := &playSession{
				ctx:      cmd.Context(),
				w:        cmd.OutOrStdout(),
				out:      NewOutputTo(cmd.OutOrStdout(), "text"),
				in:       bufio.NewScanner(cmd.InOrStdin()),
				botDelay: botDelay,
				game:     game,
			}
			return s.run()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&gameID, "game", "", "Resume an existing game")
	cmd.Flags().DurationVar(&botDelay, "bot-delay", DefaultBotDelay, "Pause before the bot moves")

	return cmd
}

// playSession is the state of one interactive "play" run
type playSession struct {
	ctx      context.Context
	w        io.Writer
	out      *Output
	in       *bufio.Scanner
	botDelay time.Duration
	game     response.GameState
	hints    []response.Position
}

func (s *playSession) run() error {
	fmt.Fprintln(s.w, playHelp)

	for {
		fmt.Fprintln(s.w)
		s.out.printGameState(s.game, s.hints)
		s.hints = nil

		if s.game.State != "in_progress" {
			return s.finish()
		}

		if s.game.VsBot && s.game.ActivePlayer == 2 {
			if err := s.botTurn(); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(s.w, "%s> ", playerName(s.game, s.game.ActivePlayer))
		if !s.in.Scan() {
			fmt.Fprintln(s.w)
			return s.in.Err()
		}

		quit, err := s.handle(strings.Fields(s.in.Text()))
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				return err
			}
			fmt.Fprintf(s.w, "Error: %s\n", apiErr.Message)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one line of input and reports whether the player quit
func (s *playSession) handle(fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		fmt.Fprintf(s.w, "Game %s left in progress\n", s.game.ID)
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.w, playHelp)
		return false, nil
	case "hint", "hints", "h":
		return false, s.showHints()
	case "revert", "undo":
		var res response.ActionResponse
		if err := client.Post(gamePath(s.game.ID, "/revert"), nil, &res); err != nil {
			return false, err
		}
		s.out.printAction(res)
		s.game = res.Game
		return false, nil
	case "restart":
		var res response.GameState
		if err := client.Post(gamePath(s.game.ID, "/restart"), nil, &res); err != nil {
			return false, err
		}
		s.game = res
		return false, nil
	}

	if len(fields) != 2 {
		fmt.Fprintln(s.w, "Enter a row and a column, e.g. 2 3 (or \"help\")")
		return false, nil
	}
	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		fmt.Fprintln(s.w, "Row and column must be numbers")
		return false, nil
	}
	return false, s.place(row, col)
}

func (s *playSession) place(row, col int) error {
	expired, err := s.checkTimer()
	if err != nil || expired {
		return err
	}

	req := request.PlaceRequest{Player: s.game.ActivePlayer, Row: row, Col: col}
	var res response.ActionResponse
	if err := client.Post(gamePath(s.game.ID, "/place"), req, &res); err != nil {
		return err
	}
	s.out.printAction(res)
	s.game = res.Game
	return nil
}

// checkTimer asks the server to apply the timeout policy once the local
// view of the deadline has passed
func (s *playSession) checkTimer() (bool, error) {
	if s.game.TurnDeadline == nil || time.Now().Before(*s.game.TurnDeadline) {
		return false, nil
	}

	var res response.TimeoutResponse
	if err := client.Post(gamePath(s.game.ID, "/timeout")+"?if_expired=true", nil, &res); err != nil {
		return false, err
	}
	s.game = res.Game
	if res.Applied {
		s.out.printTimeout(res)
	}
	return res.Applied, nil
}

func (s *playSession) showHints() error {
	var res response.HintsResponse
	path := gamePath(s.game.ID, "/hints") + "?player=" + strconv.Itoa(s.game.ActivePlayer)
	if err := client.Get(path, &res); err != nil {
		return err
	}
	if len(res.Hints) == 0 {
		fmt.Fprintln(s.w, "No safe cells left")
		return nil
	}
	s.hints = res.Hints
	return nil
}

func (s *playSession) botTurn() error {
	fmt.Fprintf(s.w, "%s is thinking...\n", playerName(s.game, 2))

	select {
	case <-time.After(s.botDelay):
	case <-s.ctx.Done():
		return s.ctx.Err()
	}

	var res response.BotMoveResponse
	if err := client.Post(gamePath(s.game.ID, "/bot-move"), nil, &res); err != nil {
		return err
	}
	s.out.printBotMove(res)
	s.game = res.Game
	return nil
}

func (s *playSession) finish() error {
	if s.game.State != "terminal" {
		fmt.Fprintf(s.w, "Game %s\n", s.game.State)
		return nil
	}

	var res response.Result
	if err := client.Get(gamePath(s.game.ID, "/result"), &res); err != nil {
		return err
	}
	fmt.Fprintln(s.w)
	s.out.printResult(res)
	if res.VsBot {
		if res.HumanWon {
			fmt.Fprintln(s.w, "You beat the bot!")
		} else {
			fmt.Fprintln(s.w, "The bot wins this time.")
		}
	}
	return nil
}
