package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/mint"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Open the live mint page",
	Long: `Open the full-screen mint page. It connects the wallet, polls the
collection every few seconds, and shows the one action available to you:
start the presale (owner), mint during the presale (whitelisted), or mint.

Logs go to <config dir>/devmint.log while the page is open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := collectionAddress()
		if err != nil {
			return err
		}
		price, err := chain.ETHToWei(cfg.MintPrice)
		if err != nil {
			return fmt.Errorf("mint price: %w", err)
		}
		gw, err := newGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Disconnect()

		closeLog, err := logToFile(cfg.LogPath(), verbose)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		page := newMintPage(ctx, gw, addr, price)
		defer page.stop()

		network := cfg.Network
		if n, err := currentNetwork(); err == nil {
			network = n.DisplayName
		}
		p := tea.NewProgram(ui.NewMintModel(network, addr.Hex(), page.do), tea.WithAltScreen())

		states, unsubscribe := page.store.Subscribe()
		defer unsubscribe()
		go func() {
			for st := range states {
				p.Send(ui.StateMsg(st))
			}
		}()
		// Connect on open, like the page's first render.
		go func() { p.Send(page.do(mint.ActionConnect)()) }()

		_, err = p.Run()
		return err
	},
}

// mintPage ties the gateway, poller and dispatcher to one store.
type mintPage struct {
	ctx     context.Context
	gw      *gateway.Gateway
	address common.Address
	price   *big.Int
	store   *mint.Store
	log     log.Logger

	mu         sync.Mutex
	pollCancel context.CancelFunc
	dispatcher *mint.Dispatcher
}

func newMintPage(ctx context.Context, gw *gateway.Gateway, addr common.Address, price *big.Int) *mintPage {
	return &mintPage{
		ctx:     ctx,
		gw:      gw,
		address: addr,
		price:   price,
		store:   mint.NewStore(mint.WithSupply(config.DefaultMaxSupply)),
		log:     log.Root().New("component", "app"),
	}
}

// do returns the command that runs a on a background goroutine.
func (p *mintPage) do(a mint.Action) tea.Cmd {
	return func() tea.Msg {
		var err error
		if a == mint.ActionConnect {
			err = p.connect()
		} else {
			err = p.dispatch(a)
		}
		if err != nil {
			p.log.Warn("Action failed", "action", a, "err", err)
		}
		return ui.ActionDoneMsg{Action: a, Err: err}
	}
}

// connect connects the wallet and starts polling the collection.
func (p *mintPage) connect() error {
	session, err := mint.Connect(p.ctx, p.gw, p.store)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dispatcher != nil {
		return nil
	}

	backend, err := p.gw.Reader()
	if err != nil {
		return err
	}
	nft, err := contract.BindCryptoDevs(p.address, backend)
	if err != nil {
		return err
	}
	poller := mint.NewPoller(nft, p.store, cfg.Interval(), nil)
	p.dispatcher = mint.NewDispatcher(mint.DispatcherConfig{
		Writer:    nft,
		Signer:    p.gw,
		Confirmer: p.gw,
		Store:     p.store,
		Price:     p.price,
		Refresh:   poller.CheckPresale,
	})

	pollCtx, cancel := context.WithCancel(p.ctx)
	p.pollCancel = cancel
	go func() {
		if err := poller.Run(pollCtx); err != nil && !errors.Is(err, context.Canceled) {
			p.log.Warn("Poller stopped", "err", err)
		}
	}()
	p.log.Info("Connected", "address", session.Address, "chain", session.ChainID, "contract", p.address)
	return nil
}

func (p *mintPage) dispatch(a mint.Action) error {
	p.mu.Lock()
	d := p.dispatcher
	p.mu.Unlock()
	if d == nil {
		return gateway.ErrNotConnected
	}

	_, err := d.Do(p.ctx, a)
	var mismatch *gateway.ChainMismatchError
	if errors.As(err, &mismatch) {
		// The gateway dropped the session; the next connect starts over.
		p.reset()
		p.store.SetSession(nil)
		p.store.SetAlert("Change the network to " + mismatch.WantName())
	}
	return err
}

func (p *mintPage) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pollCancel != nil {
		p.pollCancel()
		p.pollCancel = nil
	}
	p.dispatcher = nil
}

func (p *mintPage) stop() { p.reset() }
