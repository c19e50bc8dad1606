package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var (
	whitelistFlag    string
	whitelistAddrArg string
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Inspect or join the presale whitelist",
}

var whitelistStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whitelist capacity and membership",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gw, session, wl, err := connectWhitelist(ctx)
		if err != nil {
			return err
		}
		defer gw.Disconnect()

		who := session.Address
		if whitelistAddrArg != "" {
			if !common.IsHexAddress(whitelistAddrArg) {
				return fmt.Errorf("invalid address %q", whitelistAddrArg)
			}
			who = common.HexToAddress(whitelistAddrArg)
		}

		count, err := wl.Count(ctx)
		if err != nil {
			return err
		}
		capacity, err := wl.Capacity(ctx)
		if err != nil {
			return err
		}
		joined, err := wl.Contains(ctx, who)
		if err != nil {
			return err
		}

		member := "no"
		if joined {
			member = ui.Val("yes")
		}
		fmt.Println(ui.KeyValueBlock("Whitelist", [][2]string{
			{"Contract", ui.Addr(wl.Address().Hex())},
			{"Joined", fmt.Sprintf("%d/%d", count, capacity)},
			{"Address", ui.Addr(who.Hex())},
			{"Whitelisted", member},
		}))
		return nil
	},
}

var whitelistJoinCmd = &cobra.Command{
	Use:   "join",
	Short: "Add the connected wallet to the whitelist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gw, session, wl, err := connectWhitelist(ctx)
		if err != nil {
			return err
		}
		defer gw.Disconnect()

		joined, err := wl.Contains(ctx, session.Address)
		if err != nil {
			return err
		}
		if joined {
			fmt.Println(ui.Info(session.Address.Hex() + " is already whitelisted."))
			return nil
		}

		if !yesFlag && !ui.Confirm("Join the whitelist as "+session.Address.Hex()+"?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		opts, err := gw.Signer(ctx)
		if err != nil {
			return err
		}
		spin := ui.NewSpinner("Joining the whitelist...")
		spin.Start()
		tx, err := wl.Join(opts)
		if err != nil {
			spin.Stop()
			return err
		}
		receipt, err := gw.WaitMined(ctx, tx)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Println(ui.Success("Joined the whitelist."))
		fmt.Println(ui.Addr("Hash: " + receipt.TxHash.Hex()))
		if link := explorerTx(receipt.TxHash.Hex()); link != "" {
			fmt.Println(ui.Meta(link))
		}
		return nil
	},
}

func init() {
	whitelistCmd.PersistentFlags().StringVar(&whitelistFlag, "whitelist", "", "whitelist contract address")
	whitelistStatusCmd.Flags().StringVar(&whitelistAddrArg, "address", "", "address to check (default: the connected wallet)")
	whitelistCmd.AddCommand(whitelistStatusCmd, whitelistJoinCmd)
}

func connectWhitelist(ctx context.Context) (*gateway.Gateway, *gateway.Session, *contract.Whitelist, error) {
	addr, err := whitelistAddress(whitelistFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	var wl *contract.Whitelist
	session, err := connectBound(ctx, gw, func(backend bind.ContractBackend) (err error) {
		wl, err = contract.BindWhitelist(addr, backend)
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return gw, session, wl, nil
}
