package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/app"
	"github.com/lyngdoh/curiouskids/internal/config"
	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/logging"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/score"
	"github.com/lyngdoh/curiouskids/internal/screen"
	"github.com/lyngdoh/curiouskids/internal/store"
)

// deps holds everything a command needs. Build it with openDeps and
// release it with Close.
type deps struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store
	scores *score.Keeper

	// provider is nil when no LLM is configured; providerErr says why.
	provider    llm.Provider
	providerErr error

	speaker games.Speaker
	tts     *media.CommandSpeaker

	transcriber *media.CloudTranscriber
}

// openDeps loads the configuration and opens the store, the logger and
// the LLM provider. With tui set, logs go to a file so they do not
// scribble over the alternate screen.
func openDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPathWith(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logPath := cfg.LogFile
	if logPath == "" && tui {
		dir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		logPath = filepath.Join(dir, "curiouskids.log")
	}
	if logPath != "" {
		if err := store.EnsureDir(logPath); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	log, err := logging.New(cfg.LogMode, logPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	d := &deps{
		cfg:     cfg,
		log:     log,
		store:   st,
		scores:  score.NewKeeper(st.ScoreRepo()),
		speaker: media.NopSpeaker{},
	}

	d.provider, d.providerErr = llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo(), log)
	if d.providerErr != nil {
		d.provider = nil
		log.Warn("LLM provider not configured", zap.Error(d.providerErr))
	}

	tts, err := media.NewSpeaker(cfg.TTSCommand, log)
	switch {
	case err == nil:
		d.tts = tts
		d.speaker = tts
	case errors.Is(err, media.ErrNoSpeechEngine):
		log.Info("speech output disabled", zap.Error(err))
	default:
		log.Warn("speech output unavailable", zap.Error(err))
	}

	return d, nil
}

// requireProvider returns why no LLM is available, if it is not.
func (d *deps) requireProvider() error {
	if d.provider == nil {
		return fmt.Errorf("LLM provider not configured: %w", d.providerErr)
	}
	return nil
}

// openTranscriber connects to the speech service on first use.
func (d *deps) openTranscriber(ctx context.Context) (*media.CloudTranscriber, error) {
	if d.transcriber != nil {
		return d.transcriber, nil
	}
	t, err := media.NewCloudTranscriber(ctx, d.cfg.SpeechLanguage, d.cfg.SpeechCredentials, d.log)
	if err != nil {
		return nil, fmt.Errorf("speech recognition unavailable: %w", err)
	}
	d.transcriber = t
	return t, nil
}

// gameOptions returns the options shared by every game the CLI creates.
func (d *deps) gameOptions() []games.Option {
	return d.screenDeps().GameOptions()
}

func (d *deps) screenDeps() screen.Deps {
	sd := screen.Deps{
		Provider:     d.provider,
		Scores:       d.scores,
		Speaker:      d.speaker,
		Log:          d.log,
		MaxRefetches: d.cfg.MaxRefetches,
		Timeout:      d.cfg.LLM.Timeout,
		ImageMaxDim:  d.cfg.ImageMaxDimension,
	}
	if d.transcriber != nil {
		sd.Transcriber = d.transcriber
	}
	return sd
}

// waitSpeech blocks until anything being read aloud has finished.
func (d *deps) waitSpeech() {
	if d.tts != nil {
		d.tts.Wait()
	}
}

// Close releases the store, the speech connection and the logger.
func (d *deps) Close() {
	if d.tts != nil {
		d.tts.Stop()
	}
	if d.transcriber != nil {
		if err := d.transcriber.Close(); err != nil {
			d.log.Debug("close transcriber", zap.Error(err))
		}
	}
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store", zap.Error(err))
	}
	_ = d.log.Sync()
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.provider == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", d.providerErr)
		fmt.Fprintln(os.Stderr, "The games will be unavailable.")
	}
	if _, err := d.openTranscriber(cmd.Context()); err != nil {
		d.log.Info("voice titles disabled", zap.Error(err))
	}

	return app.Run(d.screenDeps())
}
