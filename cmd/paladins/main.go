// Command paladins is a small example tool built on the library: it checks
// the server status, then looks up the player names given as arguments.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	paladins "github.com/smoketree/paladins-go"
	"github.com/smoketree/paladins-go/internal/config"
)

func main() {
	configPath := flag.String("config", "paladins.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []paladins.Option{paladins.WithLogger(logger)}
	if cfg.BaseURL != "" {
		opts = append(opts, paladins.WithBaseURL(cfg.BaseURL))
	}
	if language, ok := paladins.ParseLanguage(cfg.Language); ok {
		opts = append(opts, paladins.WithDefaultLanguage(language))
	}
	if cfg.CacheDisabled {
		opts = append(opts, paladins.WithCacheDisabled())
	}

	client, err := paladins.New(cfg.DevID, cfg.AuthKey, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, client, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *paladins.Client, names []string) error {
	status, err := client.GetServerStatus(ctx, false)
	if err != nil {
		return fmt.Errorf("fetching server status: %w", err)
	}
	fmt.Println(status)
	for _, incident := range status.Incidents {
		fmt.Println(" ", incident)
	}

	usage, err := client.GetDataUsed(ctx)
	if err != nil {
		return fmt.Errorf("fetching usage: %w", err)
	}
	fmt.Printf("requests left today: %d\n", usage.RequestsLeft())

	for _, name := range names {
		player, err := client.GetPlayer(ctx, name)
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			continue
		}
		fmt.Printf("%s: level %d, %s, %s\n",
			player.Name(), player.Level, player.Region, player.RankedBest().Rank)

		history, err := player.GetMatchHistory(ctx, 0)
		if err != nil {
			fmt.Printf("  match history: %v\n", err)
			continue
		}
		for i, match := range history {
			if i >= 5 {
				break
			}
			fmt.Println(" ", match)
		}
	}
	return nil
}
