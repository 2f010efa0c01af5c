package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	rl "github.com/chzyer/readline"

	"github.com/tinwheel/tycoon/comms"
)

// turnCommands and propertyCommands are the dispatch table from typed
// REPL commands to wire actions; intent capture knows nothing about the
// transport.
var turnCommands = map[string]string{
	"roll": comms.ActionRollDice,
	"buy":  comms.ActionBuyProperty,
	"end":  comms.ActionEndTurn,
}

var propertyCommands = map[string]string{
	"mortgage": comms.ActionMortgageProperty,
	"redeem":   comms.ActionRedeemProperty,
	"upgrade":  comms.ActionUpgradeProperty,
}

// StartUI brings up the readline REPL in its own goroutine and returns
// a stop function.
func (c *Client) StartUI(ctx context.Context) (func() error, error) {
	completer := rl.NewPrefixCompleter(
		rl.PcItem("roll"),
		rl.PcItem("buy"),
		rl.PcItem("end"),
		rl.PcItem("mortgage"),
		rl.PcItem("redeem"),
		rl.PcItem("upgrade"),
		rl.PcItem("board"),
		rl.PcItem("players"),
		rl.PcItem("log"),
		rl.PcItem("rooms"),
		rl.PcItem("follow"),
	)

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       "hist.txt",
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	go func() {
		defer l.Close()
		c.gameRepl(ctx, l)
	}()

	return l.Close, nil
}

func (c *Client) gameRepl(ctx context.Context, l *rl.Instance) {
	for {
		v, _ := c.box.Get()
		c.setPrompt(l, v)

		c.printUpdates()
		if v.Notice != nil {
			fmt.Println(RenderNotice(*v.Notice))
		}

		line, err := l.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				return
			}
			continue
		} else if err == io.EOF {
			return
		}

		// single-letter shortcuts
		switch line {
		case "b":
			line = "board"
		case "p":
			line = "players"
		case "f":
			line = "follow"
		}

		parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
		cmd := parts[0]
		rest := ""
		if len(parts) == 2 {
			rest = parts[1]
		}

		switch {
		case cmd == "":
			v, _ := c.box.Get()
			fmt.Print(RenderPlayers(v, c.playerID))
		case turnCommands[cmd] != "":
			if err := c.Do(turnCommands[cmd], nil); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case propertyCommands[cmd] != "":
			id, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				fmt.Printf("%s <tile id>\n", cmd)
				continue
			}
			if err := c.Do(propertyCommands[cmd], &id); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case cmd == "board":
			v, _ := c.box.Get()
			fmt.Print(RenderBoard(v, c.playerID))
		case cmd == "players":
			v, _ := c.box.Get()
			fmt.Print(RenderPlayers(v, c.playerID))
		case cmd == "log":
			v, _ := c.box.Get()
			fmt.Print(RenderLog(v))
		case cmd == "rooms":
			rooms, err := ListRooms(ctx, c.server)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			for _, r := range rooms {
				fmt.Printf("%s  players:%d  phase:%s\n", r.RoomID, r.PlayerCount, r.GamePhase)
			}
		case cmd == "follow":
			c.printUpdates()
			c.followUpdates(ctx)
		default:
			fmt.Printf("unknown\n")
		}
	}
}

func (c *Client) setPrompt(l *rl.Instance, v View) {
	colour := colourFor(v.State, c.playerID)

	mark := "·"
	switch v.Status {
	case StatusConnected:
		mark = "+"
	case StatusDisconnected:
		mark = "!"
	}

	turn := ""
	if v.Mine(c.playerID) {
		turn = "|your turn"
		if v.DebtLocked(c.playerID) {
			turn = "|in debt"
		}
	}

	prompt := fmt.Sprintf("\033%s%s %s%s»\033[0m ", colour, mark, c.name, turn)
	l.SetPrompt(prompt)
}

func (c *Client) printUpdates() {
	for _, u := range c.drainUpdates() {
		fmt.Println(">", u)
	}
}

// followUpdates streams server events until interrupt, re-rendering as
// snapshots land.
func (c *Client) followUpdates(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_, gen := c.box.Get()
	views := c.box.Listen(gen)
	for {
		select {
		case m := <-c.updateCh:
			fmt.Println(">", m)
		case v := <-views:
			_, gen = c.box.Get()
			views = c.box.Listen(gen)
			if v.Notice != nil {
				fmt.Println(RenderNotice(*v.Notice))
			}
		case <-ctx.Done():
			return
		}
	}
}
