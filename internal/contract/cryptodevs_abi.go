package contract

// KindCryptoDevs is the ERC-721 collection with a whitelist presale.
// Run `devmint contract abi` for the selector table.
const KindCryptoDevs = "cryptodevs"

func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          KindCryptoDevs,
		Name:        "Crypto Devs (ERC-721 with presale)",
		Description: "20-token collection. Whitelisted addresses mint during a 5 minute presale, everyone after.",
		JSON:        cryptoDevsABI,
		Surface: []Method{
			{Sig: "owner()", Outputs: []string{"address"}},
			{Sig: "presaleStarted()", Outputs: []string{"bool"}},
			{Sig: "presaleEnded()", Outputs: []string{"uint256"}},
			{Sig: "tokenIds()", Outputs: []string{"uint256"}},
			{Sig: "startPresale()"},
			{Sig: "presaleMint()", Payable: true},
			{Sig: "mint()", Payable: true},
		},
	})
}

const cryptoDevsABI = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[
    {"name":"baseURI","type":"string"},
    {"name":"whitelistContract","type":"address"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"presaleStarted","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"presaleEnded","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenIds","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"maxTokenIds","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"_price","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"_paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"startPresale","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"presaleMint","stateMutability":"payable","inputs":[],"outputs":[]},
  {"type":"function","name":"mint","stateMutability":"payable","inputs":[],"outputs":[]},
  {"type":"function","name":"setPaused","stateMutability":"nonpayable","inputs":[{"name":"val","type":"bool"}],"outputs":[]},
  {"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true}]},
  {"type":"receive","stateMutability":"payable"},
  {"type":"fallback","stateMutability":"payable"}
]`
