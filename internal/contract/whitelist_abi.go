package contract

// KindWhitelist is the address list the collection consults during presale.
const KindWhitelist = "whitelist"

func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          KindWhitelist,
		Name:        "Whitelist",
		Description: "Capped list of addresses allowed to mint during presale.",
		JSON:        whitelistABI,
		Surface: []Method{
			{Sig: "whitelistedAddresses(address)", Outputs: []string{"bool"}},
			{Sig: "numAddressesWhitelisted()", Outputs: []string{"uint8"}},
			{Sig: "maxWhitelistedAddresses()", Outputs: []string{"uint8"}},
			{Sig: "addAddressToWhitelist()"},
		},
	})
}

const whitelistABI = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_maxWhitelistedAddresses","type":"uint8"}]},
  {"type":"function","name":"whitelistedAddresses","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"numAddressesWhitelisted","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"maxWhitelistedAddresses","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"addAddressToWhitelist","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`
