package mint

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is how often both checks run.
const DefaultInterval = 5 * time.Second

// Reader is the read side of the collection contract.
type Reader interface {
	Owner(ctx context.Context) (common.Address, error)
	PresaleStarted(ctx context.Context) (bool, error)
	PresaleEnded(ctx context.Context) (int64, error)
	TokenIDs(ctx context.Context) (uint64, error)
	MaxTokenIDs(ctx context.Context) (uint64, error)
}

// Poller keeps the Store in step with the contract.
type Poller struct {
	reader   Reader
	store    *Store
	interval time.Duration
	log      log.Logger

	supplyKnown atomic.Bool
}

// NewPoller creates a poller. A non-positive interval means DefaultInterval.
func NewPoller(reader Reader, store *Store, interval time.Duration, logger log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Root()
	}
	return &Poller{
		reader:   reader,
		store:    store,
		interval: interval,
		log:      logger.New("component", "poller"),
	}
}

// Run runs the presale check and the minted check until ctx is done. The
// presale task stops by itself once the presale has ended.
func (p *Poller) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.every(ctx, p.CheckPresale)
		p.log.Debug("Presale task stopped")
		return nil
	})
	g.Go(func() error {
		p.every(ctx, func(ctx context.Context) bool {
			p.CheckMinted(ctx)
			return false
		})
		return nil
	})
	return g.Wait()
}

// every runs tick now and then on each interval until it returns true or
// ctx is done.
func (p *Poller) every(ctx context.Context, tick func(context.Context) bool) {
	if tick(ctx) {
		return
	}
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if tick(ctx) {
				return
			}
		}
	}
}

// CheckPresale reads the presale state once and reports whether the
// presale-ended latch is set. Read errors leave the store untouched.
func (p *Poller) CheckPresale(ctx context.Context) bool {
	started, err := p.reader.PresaleStarted(ctx)
	if err != nil {
		p.log.Warn("Failed to read presale state", "err", err)
		return false
	}

	if !started {
		owner, err := p.reader.Owner(ctx)
		if err != nil {
			p.log.Warn("Failed to read owner", "err", err)
			return false
		}
		p.store.ObserveNotStarted(owner)
		return false
	}

	end, err := p.reader.PresaleEnded(ctx)
	if err != nil {
		p.log.Warn("Failed to read presale end", "err", err)
		return false
	}
	ended := p.store.ObserveStarted(end)
	if ended {
		p.log.Info("Presale has ended", "end", time.Unix(end, 0).UTC())
	}
	return ended
}

// CheckMinted reads the minted count once. The supply cap is read too
// until one read succeeds.
func (p *Poller) CheckMinted(ctx context.Context) {
	if !p.supplyKnown.Load() {
		if supply, err := p.reader.MaxTokenIDs(ctx); err != nil {
			p.log.Debug("Failed to read supply cap", "err", err)
		} else {
			p.store.ObserveSupply(supply)
			p.supplyKnown.Store(true)
		}
	}

	n, err := p.reader.TokenIDs(ctx)
	if err != nil {
		p.log.Warn("Failed to read minted count", "err", err)
		return
	}
	p.store.ObserveMinted(n)
}
