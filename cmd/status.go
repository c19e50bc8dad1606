package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/mint"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the collection's presale state once",
	Long: `Run one presale check and one minted check against the collection and
print what the live page would show.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gw, session, nft, err := connectCollection(ctx)
		if err != nil {
			return err
		}
		defer gw.Disconnect()

		store := mint.NewStore(mint.WithSupply(config.DefaultMaxSupply))
		store.SetSession(session)
		poller := mint.NewPoller(nft, store, cfg.Interval(), nil)
		poller.CheckPresale(ctx)
		poller.CheckMinted(ctx)
		st := store.State()

		owner := ui.Meta("not read once the presale has started")
		if st.Snapshot.Owner != (common.Address{}) {
			owner = ui.Addr(st.Snapshot.Owner.Hex())
			if st.IsOwner {
				owner += ui.Meta(" (you)")
			}
		}

		price := cfg.MintPrice + " ETH"
		if p, err := nft.Price(ctx); err == nil {
			price = chain.WeiToETH(p) + " ETH"
		}

		membership := ui.Meta("unknown")
		if backend, err := gw.Reader(); err == nil {
			membership = whitelistMembership(ctx, backend, session.Address)
		}

		fmt.Println(ui.KeyValueBlock("Crypto Devs", [][2]string{
			{"Contract", ui.Addr(nft.Address().Hex())},
			{"Owner", owner},
			{"Presale", presaleLine(st)},
			{"Minted", fmt.Sprintf("%d/%d", st.Snapshot.TokenIDsMinted, st.Snapshot.MaxTokenIDs)},
			{"Price", ui.Val(price)},
			{"Wallet", ui.Addr(session.Address.Hex())},
			{"Whitelisted", membership},
			{"Action", actionLine(st.UI)},
		}))
		return nil
	},
}

func presaleLine(st mint.State) string {
	end := time.Unix(st.Snapshot.PresaleEnd, 0).Local().Format(time.RFC1123)
	switch {
	case st.PresaleEnded:
		return "ended " + end
	case st.Snapshot.PresaleStarted:
		return ui.Val("open") + " until " + end
	default:
		return "not started"
	}
}

// actionLine describes the page's call to action for s.
func actionLine(s mint.UIState) string {
	p := mint.Render(s)
	switch {
	case p.HasButton():
		return ui.Val(p.Label)
	case p.Message != "":
		return ui.Meta(p.Message)
	default:
		return ui.Meta(s.String())
	}
}

// whitelistMembership reports whether addr is on the configured whitelist.
func whitelistMembership(ctx context.Context, backend bind.ContractBackend, addr common.Address) string {
	wlAddr, err := whitelistAddress("")
	if err != nil {
		return ui.Meta("no whitelist configured")
	}
	wl, err := contract.BindWhitelist(wlAddr, backend)
	if err != nil {
		return ui.Meta("unknown")
	}
	ok, err := wl.Contains(ctx, addr)
	switch {
	case err != nil:
		return ui.Meta("unknown")
	case ok:
		return ui.Val("yes")
	default:
		return "no"
	}
}
