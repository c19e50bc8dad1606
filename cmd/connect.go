package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the wallet and check the network",
	Long: `Dial the network's RPC, check the chain id against the expected one,
and print the resulting session. A wrong network is reported as an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway(cmd.Context())
		if err != nil {
			return err
		}
		defer gw.Disconnect()

		session, err := gw.Connect(cmd.Context())
		if err != nil {
			return err
		}

		mode := "signing"
		if session.ReadOnly {
			mode = "watch-only"
		}
		fmt.Println(ui.KeyValueBlock("Connected", [][2]string{
			{"Wallet", session.Wallet + ui.Meta(" ("+mode+")")},
			{"Address", ui.Addr(session.Address.Hex())},
			{"Network", ui.ChainName(chain.NewRegistry().NameForChainID(session.ChainID))},
			{"Chain ID", fmt.Sprint(session.ChainID)},
		}))
		return nil
	},
}
