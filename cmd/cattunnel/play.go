package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cat-tunnel/internal/config"
	"github.com/vovakirdan/cat-tunnel/internal/core"
	"github.com/vovakirdan/cat-tunnel/internal/games/tunnel"
	"github.com/vovakirdan/cat-tunnel/internal/platform/tui"
	"github.com/vovakirdan/cat-tunnel/internal/registry"
	"github.com/vovakirdan/cat-tunnel/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagScene      string
	flagRun        string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode (default: tunnel).

Controls:
  Left/Right, A/D  - Rotate the tunnel
  Space/Up/W       - Jump
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (when paused or after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  cattunnel play
  cattunnel play --difficulty hard
  cattunnel play tunnel_practice
  cattunnel play --seed 1234 --difficulty fixed
  cattunnel play --run 3f2c9a1e-...          # replay a stored run's track
  cattunnel play --config ./my-tunnel.yaml --scene ./my-cat.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tunnel config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagScene, "scene", "", "Path to custom scene YAML")
	playCmd.Flags().StringVar(&flagRun, "run", "", "Replay the track of a stored run (ID from 'cattunnel scores')")
}

// replayTarget looks up a stored run and returns its mode and seed. An
// explicit mode must match the run's.
func replayTarget(store *storage.Store, runID, mode string) (gameID string, seed int64, err error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return "", 0, fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	if store == nil {
		return "", 0, fmt.Errorf("run %s: scores database unavailable", id)
	}
	run, err := store.RunByID(id)
	if err != nil {
		return "", 0, err
	}
	if run == nil {
		return "", 0, fmt.Errorf("run %s not found", id)
	}
	if mode != "" && mode != run.GameID {
		return "", 0, fmt.Errorf("run %s was played in mode %q, not %q", id, run.GameID, mode)
	}
	return run.GameID, run.Seed, nil
}

// applyGameSettings validates and installs the per-session settings shared
// by play and menu.
func applyGameSettings() error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	if flagConfig != "" {
		if _, err := config.LoadTunnel(flagConfig); err != nil {
			return err
		}
	}
	if err := tunnel.SetScenePath(flagScene); err != nil {
		return err
	}
	tunnel.SetConfigPath(flagConfig)
	tunnel.SetDifficultyPreset(flagDifficulty)
	return nil
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failures are logged and play
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	gameID := mode
	if flagRun != "" {
		var err error
		gameID, cfg.Seed, err = replayTarget(store, flagRun, mode)
		if err != nil {
			return err
		}
		logger.Info("replaying run", "run", flagRun, "game", gameID, "seed", cfg.Seed)
	}
	if gameID == "" {
		gameID = tunnel.ModeID
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'cattunnel list' to see available modes", gameID)
	}
	if err := applyGameSettings(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	_, err = tui.Run(game, cfg, tui.ModelOptions{
		Store:  store,
		Logger: logger,
		Player: playerName(),
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
