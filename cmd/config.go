package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value. Keys:

  network            sepolia, hardhat, ... (also sets expected_chain_id)
  expected_chain_id  chain id the wallet must be on
  default_wallet     wallet used when --wallet is not given
  rpc_algorithm      fastest, round-robin or failover
  contract_address   CryptoDevs address
  whitelist_address  Whitelist address
  metadata_url       base URL passed to the collection constructor
  mint_price         ETH attached to presaleMint and mint
  poll_interval      seconds between presale checks
  max_whitelisted    whitelist capacity passed at deploy time`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s set to %q", args[0], args[1])))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configSetCmd)
}

var configSetters = map[string]func(c *config.Config, v string) error{
	"network": func(c *config.Config, v string) error {
		n, err := chain.NewRegistry().GetByName(v)
		if err != nil {
			return err
		}
		c.Network = n.Name
		c.ExpectedChainID = n.ChainID
		return nil
	},
	"expected_chain_id": func(c *config.Config, v string) error {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid chain id %q", v)
		}
		c.ExpectedChainID = id
		return nil
	},
	"default_wallet": func(c *config.Config, v string) error {
		c.DefaultWallet = v
		return nil
	},
	"rpc_algorithm": func(c *config.Config, v string) error {
		algo, err := parseAlgorithm(v)
		if err != nil {
			return err
		}
		c.RPCAlgorithm = string(algo)
		return nil
	},
	"contract_address": func(c *config.Config, v string) error {
		addr, err := optionalAddress(v)
		if err != nil {
			return err
		}
		c.ContractAddress = addr
		return nil
	},
	"whitelist_address": func(c *config.Config, v string) error {
		addr, err := optionalAddress(v)
		if err != nil {
			return err
		}
		c.WhitelistAddress = addr
		return nil
	},
	"metadata_url": func(c *config.Config, v string) error {
		c.MetadataURL = v
		return nil
	},
	"mint_price": func(c *config.Config, v string) error {
		if _, err := chain.ETHToWei(v); err != nil {
			return err
		}
		c.MintPrice = v
		return nil
	},
	"poll_interval": func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid poll interval %q (seconds)", v)
		}
		c.PollInterval = n
		return nil
	},
	"max_whitelisted": func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 255 {
			return fmt.Errorf("invalid max_whitelisted %q (1-255)", v)
		}
		c.MaxWhitelisted = n
		return nil
	},
}

// setConfigValue validates and applies one key.
func setConfigValue(c *config.Config, key, value string) error {
	set, ok := configSetters[key]
	if !ok {
		keys := make([]string, 0, len(configSetters))
		for k := range configSetters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown key %q (one of %v)", key, keys)
	}
	return set(c, value)
}

func optionalAddress(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if !common.IsHexAddress(v) {
		return "", fmt.Errorf("invalid address %q", v)
	}
	return common.HexToAddress(v).Hex(), nil
}
