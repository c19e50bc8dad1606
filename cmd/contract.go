package cmd

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Inspect deployed contracts and their call surface",
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded deployments",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		entries := reg.All()
		if len(entries) == 0 {
			fmt.Println(ui.Info("No contracts recorded yet."))
			fmt.Println(ui.Hint("Deploy with: devmint deploy whitelist"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 12},
			{Title: "Network", Width: 10},
			{Title: "Address", Width: 44},
			{Title: "Deployed", Width: 20},
		})
		for _, e := range entries {
			t.AddRow(ui.Row{ui.Val(e.Name), ui.ChainName(e.Network), ui.Addr(e.Address), ui.Meta(e.DeployedAt)})
		}
		fmt.Println(t.Render())
		return nil
	},
}

var contractUseCmd = &cobra.Command{
	Use:   "use <cryptodevs|whitelist> <address>",
	Short: "Pin a contract address in the config",
	Long: `Pin the collection or whitelist address in config.json. A pinned
address takes precedence over the registry. Pass "" to unpin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, addr := args[0], args[1]
		if addr != "" {
			if !common.IsHexAddress(addr) {
				return fmt.Errorf("invalid address %q", addr)
			}
			addr = common.HexToAddress(addr).Hex()
		}
		switch kind {
		case contract.KindCryptoDevs:
			cfg.ContractAddress = addr
		case contract.KindWhitelist:
			cfg.WhitelistAddress = addr
		default:
			return fmt.Errorf("unknown contract %q (use %s or %s)", kind, contract.KindCryptoDevs, contract.KindWhitelist)
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		if addr == "" {
			fmt.Println(ui.Success(fmt.Sprintf("Unpinned %s; the registry will be used.", kind)))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s pinned to %s", kind, ui.Addr(addr))))
		return nil
	},
}

var contractABICmd = &cobra.Command{
	Use:   "abi [cryptodevs|whitelist]",
	Short: "List the functions and selectors the client uses",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := contract.KindCryptoDevs
		if len(args) == 1 {
			id = args[0]
		}
		b, ok := contract.GetBuiltin(id)
		if !ok {
			return fmt.Errorf("unknown contract %q", id)
		}
		parsed, err := b.Parse()
		if err != nil {
			return err
		}

		fmt.Println(ui.StyleTitle.Render(b.Name + ": " + b.Description))
		t := ui.NewTable([]ui.Column{
			{Title: "Selector", Width: 10},
			{Title: "Signature", Width: 36},
			{Title: "Mutability", Width: 10},
			{Title: "Returns", Width: 16},
		})
		for _, s := range contract.Signatures(parsed) {
			t.AddRow(ui.Row{ui.Addr(s.Selector), ui.Val(s.Sig), ui.Meta(s.Mutability), strings.Join(s.Outputs, ", ")})
		}
		fmt.Println(t.Render())
		return nil
	},
}

func init() {
	contractCmd.AddCommand(contractListCmd, contractUseCmd, contractABICmd)
}
