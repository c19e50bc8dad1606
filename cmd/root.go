package cmd

import (
	"fmt"
	"os"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/devmint/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir       string
	cfg          *config.Config
	verbose      bool
	networkFlag  string
	walletFlag   string
	contractFlag string
	yesFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "devmint",
	Short: "Mint Crypto Devs NFTs from the terminal",
	Long: `devmint connects a wallet to an EVM node, follows the Crypto Devs
presale, and mints from a live terminal page or one-shot commands.

  devmint deploy whitelist     deploy the presale whitelist
  devmint deploy collection    deploy the NFT collection
  devmint app                  open the live mint page

The network defaults to Sepolia. Override it per call with --network or
persist it with: devmint config set network <name>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if networkFlag != "" {
			n, err := chain.NewRegistry().GetByName(networkFlag)
			if err != nil {
				return err
			}
			cfg.Network = n.Name
			cfg.ExpectedChainID = n.ChainID
		}
		setupLogging(os.Stderr, verbose)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

func init() {
	// DEVMINT_CONFIG_DIR overrides the default; --config overrides both.
	if envDir := os.Getenv("DEVMINT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.devmint)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&networkFlag, "network", "n", "", "network name (sepolia, hardhat, ...)")
	pf.StringVarP(&walletFlag, "wallet", "w", "", "wallet name (default: the configured default wallet)")
	pf.StringVar(&contractFlag, "contract", "", "CryptoDevs contract address")
	pf.BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(
		appCmd,
		connectCmd,
		statusCmd,
		presaleCmd,
		mintCmd,
		deployCmd,
		whitelistCmd,
		walletCmd,
		contractCmd,
		rpcCmd,
		configCmd,
	)
}
