package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fragmede/frontpage/internal/api"
	"github.com/fragmede/frontpage/internal/cache"
	"github.com/fragmede/frontpage/internal/config"
	"github.com/fragmede/frontpage/internal/store"
)

// runtime is a store wired to its source and, when enabled, the cache.
type runtime struct {
	store *store.Store
	db    *cache.DB
	log   logrus.FieldLogger

	stopQueue context.CancelFunc
	queueDone chan struct{}
}

// setup builds the store described by cfg. With restore set, stories cached
// by an earlier session are loaded into the store before it is returned.
func setup(cfg config.Config, log logrus.FieldLogger, restore bool) (*runtime, error) {
	client := api.NewClient(cfg.RequestTimeout, cfg.RequestsPerSec)
	src, err := api.NewSource(client, api.SourceOptions{
		Name:          cfg.Source,
		AlgoliaURL:    cfg.AlgoliaURL,
		FirebaseURL:   cfg.FirebaseURL,
		FrontPageSize: cfg.FrontPageSize,
	})
	if err != nil {
		return nil, err
	}
	dup, err := store.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	opts := []store.Option{store.WithLogger(log), store.WithDuplicatePolicy(dup)}
	rt := &runtime{log: log}

	if cfg.Persist {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
		db, err := cache.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		rt.db = db
		opts = append(opts, store.WithPersister(db))
	}

	rt.store = store.New(src, opts...)

	if restore && rt.db != nil {
		rt.restore()
	}
	return rt, nil
}

func (rt *runtime) restore() {
	stories, err := rt.db.LoadStories()
	if err != nil {
		// A broken cache only costs a cold start.
		rt.log.WithError(err).Warn("restoring cached stories")
		return
	}
	ranking, err := rt.db.LoadRanking()
	if err != nil {
		rt.log.WithError(err).Warn("restoring front page ranking")
	}
	rt.store.Restore(stories, ranking)
	rt.log.WithFields(logrus.Fields{
		"stories": len(stories),
		"ranked":  len(ranking),
	}).Debug("restored cached stories")
}

// startQueue runs the store's navigation queue until ctx is done or Close is
// called.
func (rt *runtime) startQueue(ctx context.Context) {
	ctx, rt.stopQueue = context.WithCancel(ctx)
	rt.queueDone = make(chan struct{})
	go func() {
		defer close(rt.queueDone)
		rt.store.Run(ctx)
	}()
}

// Close stops the navigation queue, waits for outstanding fetches so their
// results reach the cache, then closes it. No fetch can start once the queue
// has returned, so the wait is final.
func (rt *runtime) Close() error {
	if rt.queueDone != nil {
		rt.stopQueue()
		<-rt.queueDone
	}
	rt.store.Wait()
	if rt.db != nil {
		return rt.db.Close()
	}
	return nil
}
