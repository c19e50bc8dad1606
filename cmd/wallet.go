package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/spf13/cobra"
)

var walletKeyFlag string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a signing wallet from a private key, or a watch-only wallet from an
address. Watch-only wallets can connect and read but not mint.

  devmint wallet add alice --key 0x...
  devmint wallet add bob 0xAbC...`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		var (
			w   *wallet.Wallet
			err error
		)
		switch {
		case walletKeyFlag != "":
			w, err = mgr.AddWithKey(name, walletKeyFlag)
		case len(args) == 2:
			w, err = mgr.AddWatchOnly(name, args[1])
		default:
			return fmt.Errorf("address required for watch-only wallet\n  Usage: devmint wallet add <name> <address>\n  Or for signing: devmint wallet add <name> --key <private-key>")
		}
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("%s wallet %q added: %s", walletTypeLabel(w.Type), name, ui.Addr(w.Address))))
		fmt.Println(ui.Hint("Set as default with: devmint wallet use " + name))
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new signing wallet",
	Long: `Generate a fresh EVM keypair and store the private key in the keyring.

The private key is displayed once. Fund the address with test ETH from the
network's faucet before minting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()
		w, err := mgr.Generate(name)
		if err != nil {
			return err
		}
		hexKey, err := mgr.Keys().Retrieve(w.KeyRef)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("  %s  %s\n", ui.Meta("Wallet :"), ui.Val(w.Name))
		fmt.Printf("  %s  %s\n\n", ui.Meta("Address:"), ui.Addr(w.Address))
		fmt.Println(ui.StyleAlert.Render(
			"SAVE YOUR PRIVATE KEY. It is shown only once.\n\n0x" + hexKey,
		))
		if n, err := currentNetwork(); err == nil && n.FaucetURL != "" {
			fmt.Println(ui.Hint("Get test ETH: " + n.FaucetURL))
		}
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets := newWalletManager().List()
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: devmint wallet add alice --key <private-key>"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Type", Width: 12},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault || w.Name == cfg.DefaultWallet {
				def = ui.StyleSuccess.Render("✓")
			}
			t.AddRow(ui.Row{
				ui.Val(w.Name),
				ui.Addr(w.Address),
				ui.Meta(walletTypeLabel(w.Type)),
				def,
			})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := newWalletManager().SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !yesFlag && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key (hex) for a signing wallet")
	walletCmd.AddCommand(walletAddCmd, walletGenerateCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}

func walletTypeLabel(t string) string {
	if t == wallet.TypeSigning {
		return "signing"
	}
	return "watch-only"
}
