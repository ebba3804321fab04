package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
	"github.com/vovakirdan/neon-runner/internal/sfx"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// openStore opens the database, or returns nil with a warning so play
// can continue without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// resolveSettings starts from the saved profile and applies --difficulty.
func resolveSettings(store *storage.Store) (config.Settings, error) {
	settings := config.DefaultSettings()
	if store != nil {
		stored, ok, err := store.LoadSettings(storage.DefaultProfile)
		if err != nil {
			logger.Warn("could not load settings", "error", err)
		} else if ok {
			settings = stored
		}
	}
	if flagDifficulty != "" {
		tier, ok := config.ParseTier(flagDifficulty)
		if !ok {
			return settings, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		settings.Difficulty = tier
	}
	return settings, nil
}

// configureGames applies the global tuning flags to every game created later.
func configureGames(settings config.Settings) error {
	if flagConfig != "" {
		if _, err := config.LoadNeon(flagConfig); err != nil {
			return err
		}
	}
	neon.SetConfigPath(flagConfig)
	neon.SetDefaultSettings(settings)
	return nil
}

// startAudio pipes sound cues to an external PCM player when one exists.
// The returned stop function is always safe to call.
func startAudio(ctx context.Context) (neon.Sink, func()) {
	rate := sfx.DefaultSampleRate
	backend, err := sfx.Detect(rate)
	if err != nil {
		if !errors.Is(err, sfx.ErrNoPlayer) {
			logger.Warn("audio unavailable", "error", err)
		} else {
			logger.Info("no audio player found, sound disabled")
		}
		return nil, func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	mixer := sfx.NewMixer(rate, flagVolume)
	done, err := sfx.Play(ctx, backend, mixer)
	if err != nil {
		cancel()
		logger.Warn("audio unavailable", "player", backend.Name, "error", err)
		return nil, func() {}
	}
	logger.Info("sound enabled", "player", backend.Name)
	return mixer, func() {
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("audio player exited", "error", err)
		}
	}
}
