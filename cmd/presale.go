package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/mint"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/spf13/cobra"
)

var presaleCmd = &cobra.Command{
	Use:   "presale",
	Short: "Start the presale or mint during it",
}

var presaleStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the presale (collection owner only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, mint.ActionStartPresale)
	},
}

var presaleMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint during the presale (whitelisted addresses only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, mint.ActionPresaleMint)
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint after the presale has ended",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, mint.ActionPublicMint)
	},
}

func init() {
	presaleCmd.AddCommand(presaleStartCmd, presaleMintCmd)
}

// runAction sends one dispatcher action after a preview and confirmation.
// The contract decides whether the caller may act; the current page state
// is only shown as a warning.
func runAction(cmd *cobra.Command, a mint.Action) error {
	ctx := cmd.Context()
	price, err := chain.ETHToWei(cfg.MintPrice)
	if err != nil {
		return fmt.Errorf("mint price: %w", err)
	}

	gw, session, nft, err := connectCollection(ctx)
	if err != nil {
		return err
	}
	defer gw.Disconnect()
	if session.ReadOnly {
		return fmt.Errorf("wallet %q is watch-only; add it with --key to send transactions", session.Wallet)
	}

	store := mint.NewStore(mint.WithSupply(config.DefaultMaxSupply))
	store.SetSession(session)
	poller := mint.NewPoller(nft, store, cfg.Interval(), nil)
	poller.CheckPresale(ctx)

	if st := store.State(); mint.Render(st.UI).Action != a {
		fmt.Println(ui.Warn("The page is not offering " + a.String() + " right now (" + st.UI.String() + "); the contract may reject it."))
	}

	pairs := [][2]string{
		{"Call", ui.Val(a.String() + "()")},
		{"Contract", ui.Addr(nft.Address().Hex())},
		{"From", ui.Addr(session.Address.Hex())},
		{"Network", ui.ChainName(chain.NewRegistry().NameForChainID(session.ChainID))},
	}
	if a != mint.ActionStartPresale {
		pairs = append(pairs, [2]string{"Value", chain.WeiToETH(price) + " ETH"})
	}
	fmt.Println(ui.KeyValueBlock("Transaction Preview", pairs))

	if !yesFlag && !ui.Confirm("Send this transaction?") {
		fmt.Println(ui.Meta("Cancelled."))
		return nil
	}

	d := mint.NewDispatcher(mint.DispatcherConfig{
		Writer:    nft,
		Signer:    gw,
		Confirmer: gw,
		Store:     store,
		Price:     price,
		Refresh:   poller.CheckPresale,
	})

	spin := ui.NewSpinner("Waiting for confirmation...")
	spin.Start()
	receipt, err := d.Do(ctx, a)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Println(ui.Success(store.State().Notice))
	fmt.Println(ui.Addr("Hash: " + receipt.TxHash.Hex()))
	if url := explorerTx(receipt.TxHash.Hex()); url != "" {
		fmt.Println(ui.Meta(url))
	}
	return nil
}
