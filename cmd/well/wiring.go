package main

import (
	"context"
	"fmt"
	"os"

	"wellspring/internal/catalog"
	"wellspring/internal/config"
	"wellspring/internal/gallery"
	"wellspring/internal/journal"
	"wellspring/internal/kv"
	"wellspring/internal/logging"
	"wellspring/internal/random"
	"wellspring/internal/ritual"
	"wellspring/internal/roll"
	"wellspring/internal/share"
	"wellspring/internal/stats"

	"go.uber.org/zap"
)

// app holds the components every command works with.
type app struct {
	cfg *config.Config
	log *zap.Logger

	store   kv.Store
	content ritual.Content
	watcher *catalog.Watcher

	profile *journal.Profile
	moods   *journal.MoodLog
	vault   *journal.AffirmationVault

	ritual  *ritual.Engine
	roll    *roll.Engine
	stats   *stats.Loader
	gallery *gallery.Saver
	sharer  share.Sharer
}

// openApp opens storage and builds the engines from the loaded config.
func openApp(ctx context.Context) (*app, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := kv.Open(ctx, cfg.Storage, logging.For(logger, logging.CategoryStore))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a := &app{cfg: cfg, log: logger, store: store, content: catalog.Default()}

	if cfg.Catalog.Path != "" {
		w, err := catalog.NewWatcher(cfg.Catalog.Path, logging.For(logger, logging.CategoryCatalog))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		if cfg.Catalog.Watch {
			if err := w.Start(ctx); err != nil {
				logger.Warn("catalog watching disabled", zap.Error(err))
			}
		}
		a.watcher, a.content = w, w
	}

	src := random.Default()
	if seed != 0 {
		src = random.New(seed)
	}

	storeLog := logging.For(logger, logging.CategoryStore)
	a.profile = journal.NewProfile(store, storeLog)
	a.moods = journal.NewMoodLog(store, storeLog)
	a.vault = journal.NewAffirmationVault(store, storeLog)

	a.ritual = ritual.NewEngine(a.content, a.moods, a.vault,
		ritual.WithRandom(src),
		ritual.WithTaskDuration(cfg.GetTaskDuration()),
		ritual.WithLogger(logging.For(logger, logging.CategoryRitual)))
	a.roll = roll.NewEngine(src, logging.For(logger, logging.CategoryRoll))
	a.stats = stats.NewLoader(a.profile, a.moods, logging.For(logger, logging.CategoryStats))
	a.gallery = &gallery.Saver{
		Dir:       cfg.Gallery.Dir,
		AllowSave: cfg.Gallery.AllowSave,
		Width:     cfg.Gallery.Width,
		Height:    cfg.Gallery.Height,
		Log:       logging.For(logger, logging.CategoryGallery),
	}
	a.sharer = share.Fallback{share.ClipboardSharer{}, share.WriterSharer{W: os.Stdout}}
	return a, nil
}

func (a *app) shareLog() *zap.Logger {
	return logging.For(a.log, logging.CategoryShare)
}

// Close stops the catalog watcher and closes storage.
func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close storage", zap.Error(err))
	}
}
