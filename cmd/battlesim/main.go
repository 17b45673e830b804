// Command battlesim plays one battle from a roster file against the
// session service, picking the player's moves at random.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/game/battle"
	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/session"
)

const ClientConfigPath = "config/battlesim.yaml"

func main() {
	cfgPath := ClientConfigPath
	if p := os.Getenv("MONBATTLE_CLIENT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadClient(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "session service base URL")
	flag.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "roster YAML file")
	flag.StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "player combatant id")
	flag.StringVar(&cfg.OpponentID, "opponent", cfg.OpponentID, "opponent combatant id")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.DurationVar(&cfg.OpponentDelay, "delay", cfg.OpponentDelay, "opponent thinking delay")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Client) error {
	roster, err := data.LoadRoster(cfg.RosterPath)
	if err != nil {
		return err
	}

	ids := roster.IDs()
	if cfg.PlayerID == "" && len(ids) > 0 {
		cfg.PlayerID = ids[0]
	}
	if cfg.OpponentID == "" && len(ids) > 1 {
		cfg.OpponentID = ids[1]
	}

	player, err := roster.Combatant(cfg.PlayerID)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	opponent, err := roster.Combatant(cfg.OpponentID)
	if err != nil {
		return fmt.Errorf("opponent: %w", err)
	}

	mine, theirs := data.NewSnapshot(player), data.NewSnapshot(opponent)
	fmt.Printf("%s [%s] Lv%d vs %s [%s] Lv%d\n",
		mine.DisplayName, mine.Element.Title(), mine.Level,
		theirs.DisplayName, theirs.Element.Title(), theirs.Level)

	rng := combat.NewRand(cfg.Seed)
	// отдельный генератор: rng используется горутиной соперника
	pick := combat.NewRand(pickSeed(cfg.Seed))
	svc := session.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)

	b, err := battle.Start(ctx, svc, mine, theirs, battle.Options{
		Rand:            rng,
		OpponentDelay:   cfg.OpponentDelay,
		CompleteTimeout: cfg.CompleteTimeout,
	})
	if err != nil {
		return err
	}

	printed := 0
	for {
		changed := b.Changed()
		st := b.Snapshot()
		for _, line := range st.Log[printed:] {
			fmt.Println(line)
		}
		printed = len(st.Log)

		if st.IsOver {
			break
		}
		if st.Phase == battle.PhasePlayerTurn && !b.Busy() {
			if b.SelectMove(pick.IntN(len(st.Player.Moves))) {
				continue
			}
		}

		select {
		case <-ctx.Done():
			b.Abandon()
			fmt.Println("Battle abandoned.")
			return nil
		case <-changed:
		}
	}

	select {
	case <-ctx.Done():
		return nil
	case <-b.Reported():
	}

	out, err := b.Report()
	if err != nil {
		fmt.Printf("Result could not be reported: %v\n", err)
		return nil
	}
	if !out.Accepted || out.DerivedRewards == nil {
		fmt.Println("Result was not accepted.")
		return nil
	}
	fmt.Printf("Rewards: %d exp, %d coins.\n", out.DerivedRewards.Experience, out.DerivedRewards.Coins)
	return nil
}

func pickSeed(seed uint64) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + 1
}
