package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tinwheel/tycoon/client"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	server := flag.String("server", "localhost:8001", "game server host:port")
	room := flag.String("room", "", "room id to join, empty to create one")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: tycoon -name <name> [-room <id>] [-server <host:port>]")
		os.Exit(2)
	}

	rand.Seed(time.Now().Unix())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	roomID := *room
	if roomID == "" {
		id, err := client.CreateRoom(ctx, *server, "新游戏")
		if err != nil {
			log.Error().Err(err).Msg("cannot create room")
			os.Exit(1)
		}
		roomID = id
		log.Info().Str("room", roomID).Msg("created room")
	}

	playerID := randID()
	fmt.Printf("房间ID: %s  玩家ID: %s\n", roomID, playerID)

	c := client.NewClient(*server, roomID, playerID, *name)

	stopUI, err := c.StartUI(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cannot start ui")
		os.Exit(1)
	}
	defer stopUI()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return c.Run(gctx)
	})

	err = grp.Wait()
	log.Info().Err(err).Msg("client return")
	if err != nil && err != context.Canceled {
		os.Exit(1)
	}
}

func randID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 9)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return "player_" + string(b)
}
