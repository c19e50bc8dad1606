package config

// Config holds all devmint configuration.
type Config struct {
	Network          string              `json:"network"`
	ExpectedChainID  int64               `json:"expected_chain_id"`
	DefaultWallet    string              `json:"default_wallet"`
	RPCAlgorithm     string              `json:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	CustomRPCs       map[string][]string `json:"custom_rpcs"`
	ContractAddress  string              `json:"contract_address"`
	WhitelistAddress string              `json:"whitelist_address"`
	MetadataURL      string              `json:"metadata_url"`
	MintPrice        string              `json:"mint_price"`    // ETH, e.g. "0.01"
	PollInterval     int                 `json:"poll_interval"` // seconds
	MaxWhitelisted   int                 `json:"max_whitelisted"`

	// internal: config dir path used for Save()
	configDir string
}
