// Package poller keeps the front page current while the reader is open.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FrontPageLoader is the part of the store the poller drives.
type FrontPageLoader interface {
	LoadFrontPage(ctx context.Context) error
}

// Poller reloads the front page on a fixed interval.
type Poller struct {
	loader   FrontPageLoader
	interval time.Duration
	timeout  time.Duration
	log      logrus.FieldLogger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates a poller. timeout bounds each reload; zero means no bound.
func New(loader FrontPageLoader, interval, timeout time.Duration, log logrus.FieldLogger) *Poller {
	return &Poller{
		loader:   loader,
		interval: interval,
		timeout:  timeout,
		log:      log,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the background polling loop. A non-positive interval disables
// polling.
func (p *Poller) Start() {
	if p.interval <= 0 {
		close(p.done)
		return
	}
	go p.loop()
}

// Stop halts the background polling and waits for an in-progress reload.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	<-p.done
}

func (p *Poller) loop() {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	// Abort the reload if Stop is called mid-request.
	go func() {
		select {
		case <-p.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := p.loader.LoadFrontPage(ctx); err != nil {
		p.log.WithError(err).Warn("front page refresh failed")
		return
	}
	p.log.Debug("front page refreshed")
}
