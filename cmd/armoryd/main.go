package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/armoryd/internal/battlenet"
	"codeberg.org/mutker/armoryd/internal/collector"
	"codeberg.org/mutker/armoryd/internal/config"
	"codeberg.org/mutker/armoryd/internal/logger"
	"codeberg.org/mutker/armoryd/internal/pid"
	"codeberg.org/mutker/armoryd/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	client, err := battlenet.NewClient(battlenet.Region(cfg.Region), cfg.ClientID, cfg.ClientSecret,
		battlenet.WithThrottleDelay(time.Duration(cfg.ThrottleDelay)*time.Second))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create API client")
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := verifyStartup(ctx, client); err != nil {
		logger.Fatal().Err(err).Msg("startup verification failed")
	}

	poller := collector.New(client, collectorConfig())

	if cfg.Once {
		if err := runOnce(ctx, poller); err != nil {
			logger.Error().Err(err).Msg("poll cycle failed")
			os.Exit(1)
		}
		return
	}

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer pid.Remove()

	recorder, err := telemetry.NewService(telemetry.Config{
		DBPath:  cfg.Database,
		Enabled: cfg.Telemetry,
	}, logger.Default())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	srv := startServer(poller)

	loop(ctx, poller, recorder)
	cleanup(srv, recorder)
}

// verifyStartup confirms credentials and every configured character
// before the loop starts. A daemon that can never produce a snapshot
// should fail fast.
func verifyStartup(ctx context.Context, client *battlenet.Client) error {
	if err := client.Verify(ctx); err != nil {
		return err
	}

	for _, character := range cfg.Characters {
		if err := client.CheckCharacter(ctx, character.Realm, character.Name); err != nil {
			return err
		}
		logger.Debug().
			Str("realm", character.Realm).
			Str("name", character.Name).
			Msg("Character verified")
	}

	return nil
}

func collectorConfig() collector.Config {
	characters := make([]collector.Character, 0, len(cfg.Characters))
	for _, c := range cfg.Characters {
		characters = append(characters, collector.Character{Realm: c.Realm, Name: c.Name})
	}

	return collector.Config{
		Characters: characters,
		Features: collector.Features{
			ServerStatus: cfg.Features.ServerStatus,
			PvP:          cfg.Features.PvP,
			Raids:        cfg.Features.Raids,
			MythicPlus:   cfg.Features.MythicPlus,
		},
		Expansion:   cfg.Expansion,
		SeasonID:    cfg.SeasonID,
		EntityDelay: time.Duration(cfg.EntityDelay) * time.Millisecond,
	}
}

func loop(ctx context.Context, poller *collector.Collector, recorder telemetry.Recorder) {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First cycle immediately; the ticker paces the rest
	cycle(ctx, poller, recorder)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycle(ctx, poller, recorder)
		}
	}
}

// cycle runs one poll and stores the result. Failed cycles keep the
// previous snapshot and the daemon keeps polling.
func cycle(ctx context.Context, poller *collector.Collector, recorder telemetry.Recorder) {
	snapshot, err := poller.RunCycle(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Msg("Poll cycle failed")
		return
	}

	if err := recorder.Record(ctx, snapshot); err != nil {
		logger.Warn().Err(err).Msg("Failed to store snapshot")
	}
}

// runOnce runs a single cycle and prints the flattened snapshot
func runOnce(ctx context.Context, poller *collector.Collector) error {
	snapshot, err := poller.RunCycle(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(snapshot.Flatten(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
