package config

import "time"

// Chain IDs the client knows how to guard against.
const (
	ChainIDMainnet = int64(1)
	ChainIDSepolia = int64(11155111)
	ChainIDHardhat = int64(31337)
)

// Collection defaults, matching the deployed CryptoDevs contract.
const (
	DefaultMintPrice      = "0.01"
	DefaultMaxSupply      = uint64(20)
	DefaultMaxWhitelisted = 10
	DefaultMetadataURL    = "https://nft-collection-sneh1999.vercel.app/api/"
)

// Timeouts used by one-shot commands. The live app waits on
// confirmations without a deadline.
const (
	RPCSelectTimeout = 10 * time.Second
	DialTimeout      = 15 * time.Second
	TxDeployTimeout  = 5 * time.Minute
)
