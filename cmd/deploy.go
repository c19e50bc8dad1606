package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/deploy"
	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	defaultWhitelistArtifact  = "artifacts/contracts/Whitelist.sol/Whitelist.json"
	defaultCollectionArtifact = "artifacts/contracts/CryptoDevs.sol/CryptoDevs.json"
)

var (
	deployArtifact    string
	deployEnvFile     string
	deployMax         int
	deployMetadataURL string
	deployWhitelist   string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the Whitelist and CryptoDevs contracts",
	Long: `Deploy from compiled Hardhat or Foundry artifacts. Deploy the whitelist
first; the collection's constructor takes its address.

PROVIDER_HTTP_URL and PRIVATE_KEY are read from the environment or from
.env when set, and take precedence over the configured RPCs and wallet.

Deployed addresses are recorded as whitelist@<network> and
cryptodevs@<network>, so later commands find them without flags.`,
}

var deployWhitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Deploy the presale whitelist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := deployMax
		if limit <= 0 {
			limit = cfg.MaxWhitelisted
		}
		if limit <= 0 || limit > 255 {
			return fmt.Errorf("--max must be between 1 and 255, got %d", limit)
		}
		path := deployArtifact
		if path == "" {
			path = defaultWhitelistArtifact
		}
		art, err := contract.LoadArtifact(path)
		if err != nil {
			return err
		}
		if art.Name == "" {
			art.Name = "Whitelist"
		}

		return runDeploy(cmd.Context(), contract.KindWhitelist, func(ctx context.Context, d *deploy.Deployer) (*deploy.Result, error) {
			return d.DeployWhitelist(ctx, art, uint8(limit))
		})
	},
}

var deployCollectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Deploy the CryptoDevs collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, err := whitelistAddress(deployWhitelist)
		if err != nil {
			return fmt.Errorf("whitelist: %w", err)
		}
		url := deployMetadataURL
		if url == "" {
			url = cfg.MetadataURL
		}
		path := deployArtifact
		if path == "" {
			path = defaultCollectionArtifact
		}
		art, err := contract.LoadArtifact(path)
		if err != nil {
			return err
		}
		if art.Name == "" {
			art.Name = "CryptoDevs"
		}

		fmt.Println(ui.KeyValueBlock("Constructor", [][2]string{
			{"Metadata URL", ui.Val(url)},
			{"Whitelist", ui.Addr(wl.Hex())},
		}))
		return runDeploy(cmd.Context(), contract.KindCryptoDevs, func(ctx context.Context, d *deploy.Deployer) (*deploy.Result, error) {
			return d.DeployCollection(ctx, art, url, wl)
		})
	},
}

func init() {
	f := deployCmd.PersistentFlags()
	f.StringVar(&deployArtifact, "artifact", "", "artifact JSON (default: the Hardhat artifacts path)")
	f.StringVar(&deployEnvFile, "env", ".env", "dotenv file with PROVIDER_HTTP_URL and PRIVATE_KEY")
	deployWhitelistCmd.Flags().IntVar(&deployMax, "max", 0, "maximum number of whitelisted addresses (default: config max_whitelisted)")
	deployCollectionCmd.Flags().StringVar(&deployMetadataURL, "metadata-url", "", "token metadata base URL (default: config metadata_url)")
	deployCollectionCmd.Flags().StringVar(&deployWhitelist, "whitelist", "", "whitelist address (default: config, then whitelist@<network>)")
	deployCmd.AddCommand(deployWhitelistCmd, deployCollectionCmd)
}

func runDeploy(ctx context.Context, kind string, send func(context.Context, *deploy.Deployer) (*deploy.Result, error)) error {
	if err := godotenv.Load(deployEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", deployEnvFile, err)
	}

	account, err := deploySigner()
	if err != nil {
		return err
	}
	url := os.Getenv("PROVIDER_HTTP_URL")
	if url == "" {
		if url, err = pickRPC(ctx); err != nil {
			return err
		}
	}

	dialCtx, cancel := context.WithTimeout(ctx, config.DialTimeout)
	defer cancel()
	client, err := chain.Dial(dialCtx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := client.ChainID(dialCtx)
	if err != nil {
		return err
	}
	if id != cfg.ExpectedChainID {
		return &gateway.ChainMismatchError{Got: id, Want: cfg.ExpectedChainID}
	}
	opts, err := account.TransactOpts(ctx, big.NewInt(id))
	if err != nil {
		return err
	}

	if bal, err := client.Balance(ctx, opts.From); err == nil {
		fmt.Println(ui.Meta(fmt.Sprintf("Deployer %s has %s ETH", opts.From.Hex(), chain.WeiToETH(bal))))
	}

	ctx, cancel = context.WithTimeout(ctx, config.TxDeployTimeout)
	defer cancel()

	spin := ui.NewSpinner("Deploying " + kind + " from " + account.Name() + "...")
	spin.Start()
	res, err := send(ctx, deploy.New(client.Eth(), opts, nil))
	spin.Stop()
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	reg.Add(res.Entry(kind, cfg.Network, kind))
	if err := reg.Save(); err != nil {
		return fmt.Errorf("saving contracts: %w", err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("%s contract deployed", kind)))
	fmt.Println(ui.KeyValueBlock("Deployment", [][2]string{
		{"Address", ui.Addr(res.Address.Hex())},
		{"Tx", ui.Addr(res.TxHash.Hex())},
		{"Block", fmt.Sprint(res.Block)},
		{"Gas used", fmt.Sprint(res.GasUsed)},
		{"Registry", ui.Meta(kind + "@" + cfg.Network)},
	}))
	if link := explorerTx(res.TxHash.Hex()); link != "" {
		fmt.Println(ui.Meta(link))
	}
	return nil
}

// deploySigner prefers PRIVATE_KEY, then the configured wallet.
func deploySigner() (*wallet.Signer, error) {
	if key := os.Getenv("PRIVATE_KEY"); key != "" {
		return wallet.FromPrivateKey("PRIVATE_KEY", key)
	}
	mgr := newWalletManager()
	w, err := resolveWallet(mgr)
	if err != nil {
		return nil, err
	}
	if !w.CanSign() {
		return nil, fmt.Errorf("%w: %s", wallet.ErrWatchOnly, w.Name)
	}
	return wallet.NewSigner(w, mgr.Keys()), nil
}
