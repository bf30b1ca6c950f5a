package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
)

// Minimal ABI fragments for the contracts this service reads. Full ABIs
// live with the transaction-building layer, which is out of scope here.
const (
	VatABI = `[
		{"constant":true,"inputs":[{"name":"","type":"bytes32"}],"name":"ilks","outputs":[{"name":"Art","type":"uint256"},{"name":"rate","type":"uint256"},{"name":"spot","type":"uint256"},{"name":"line","type":"uint256"},{"name":"dust","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"Line","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"debt","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
	]`
	SpotABI = `[
		{"constant":true,"inputs":[{"name":"","type":"bytes32"}],"name":"ilks","outputs":[{"name":"pip","type":"address"},{"name":"mat","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"par","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
	]`
	JugABI = `[
		{"constant":true,"inputs":[{"name":"","type":"bytes32"}],"name":"ilks","outputs":[{"name":"duty","type":"uint256"},{"name":"rho","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"base","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
	]`
	ERC20ABI = `[
		{"constant":true,"inputs":[{"name":"guy","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"payable":false,"stateMutability":"view","type":"function"}
	]`
	OSMABI = `[
		{"constant":true,"inputs":[],"name":"zzz","outputs":[{"name":"","type":"uint64"}],"payable":false,"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"hop","outputs":[{"name":"","type":"uint16"}],"payable":false,"stateMutability":"view","type":"function"}
	]`
)

func contractDesc(abiJSON, address string) ContractDesc {
	return ContractDesc{ABI: abiJSON, Address: common.HexToAddress(address)}
}

// mainnetAddresses is the GSU mainnet deployment address book.
var mainnetAddresses = map[string]string{
	"MCD_VAT":                     "0x35D1b3F3D7966A1DFe207aa4514C12a259A0492B",
	"MCD_SPOT":                    "0x65C79fcB50Ca1594B025960e539eD7A9a6D434A3",
	"MCD_JUG":                     "0x19c0976f590D67707E62397C87829d896Dc0f1F1",
	"MCD_POT":                     "0x197E90f9FAD81970bA7976f33CbD77088E5D7cf7",
	"MCD_END":                     "0xBB856d1742fD182a90239D7AE85706C2FE4e5922",
	"MCD_DOG":                     "0x135954d155898D42C90D2a57824C690e0c7BEf1B",
	"MCD_DAI":                     "0x6B175474E89094C44Da98b954EedeAC495271d0F",
	"MCD_GOV":                     "0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2",
	"MCD_JOIN_DAI":                "0x9759A6Ac90977b93B58547b4A71c78317f391A28",
	"MCD_FLASH":                   "0x1EB4CF3A948E7D72A198fe073cCb8C7a948cD853",
	"CDP_MANAGER":                 "0x5ef30b9986345249bc32d8928B7ee64DE9435E39",
	"CDP_REGISTRY":                "0xBe0274664Ca7A68d6b5dF826FB3CcB7c620bADF3",
	"GET_CDPS":                    "0x36a724Bd100c39f0Ea4D3A20F7097eE01A8Ff573",
	"PROXY_REGISTRY":              "0x4678f0a6958e4D2Bc4F1BAF7Bc52E8F3564f3fE4",
	"PROXY_FACTORY":               "0xA26e15C895EFc0616177B7c1e7270A4C7D51C997",
	"PROXY_ACTIONS":               "0x82ecD135Dce65Fbc6DbdD0e4237E0AF93FFD5038",
	"PROXY_ACTIONS_DSR":           "0x07ee93aEEa0a36FfF2A9B95dd22Bd6049EE54f26",
	"OPERATION_EXECUTOR":          "0x563d2689fE885009035f1A26CD1c50A92b99CE3f",
	"ETH":                         "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
	"MCD_JOIN_ETH_A":              "0x2F0b23f53734252Bda2277357e97e1517d6B042A",
	"MCD_JOIN_ETH_B":              "0x08638eF1A205bE6762A8b935F5da9b700Cf7322c",
	"MCD_JOIN_ETH_C":              "0xF04a5cC80B1E94C69B48f5ee68a08CD2F09A7c3E",
	"MCD_JOIN_WBTC_A":             "0xBF72Da2Bd84c5170618Fbe5914B0ECA9638d5eb5",
	"MCD_JOIN_WBTC_B":             "0xfA8c996e158B80D77FbD0082BB437556A65B96E0",
	"MCD_JOIN_WBTC_C":             "0x7f62f9592b823331E012D3c5DdF2A7714CfB9de2",
	"MCD_JOIN_USDT_A":             "0x0Ac6A1D74E84C2dF9063bDDc31699FF2a2BB22A2",
	"PIP_ETH":                     "0x81FE72B5A8d1A857d176C3E7d5Bd2679A9B85763",
	"PIP_WBTC":                    "0xf185d0682d50819263941e5f4EacC763CC5C6C42",
	"PIP_USDT":                    "0x7a5918670B0C390aD25f7beE908c1ACc2d314A3C",
	"PIP_USDC":                    "0x77b68899b99b686F415d074278a9a16b336085A0",
	"AAVE_PROTOCOL_DATA_PROVIDER": "0x057835Ad21a177dbdd3090bB1CAE03EaCF78Fc6d",
	"AAVE_PRICE_ORACLE":           "0xA50ba011c48153De246E5192C8f9258A2ba79Ca9",
	"AAVE_LENDING_POOL":           "0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9",
}

// goerliAddresses is the GSU goerli testnet deployment address book.
var goerliAddresses = map[string]string{
	"MCD_VAT":                     "0xB966002DDAa2Baf48369f5015329750019736031",
	"MCD_SPOT":                    "0xACe2A9106ec466DbE9e4BA711a316C1cdA946D05",
	"MCD_JUG":                     "0xC90C99FE9B5d5207A03b9F28A6E8A19C0e558916",
	"MCD_POT":                     "0x50672F0a14B40051B65958818a7AcA3D54Bd81Af",
	"MCD_END":                     "0xDb1d3edb80d3faA1B7257Ab4018A609E327FA50D",
	"MCD_DOG":                     "0x5cf85A37Dbd28A239698B4F9aA9a0D22Cb941146",
	"MCD_DAI":                     "0x11fE4B6AE13d2a6055C8D9cF65c55bac32B5d844",
	"MCD_GOV":                     "0xc5E4eaB513A7CD12b2335e8a0D57273e13D499f7",
	"MCD_JOIN_DAI":                "0x6a60b7070befb2bfc964F646efDF70388320f4E0",
	"MCD_FLASH":                   "0x0a6861D6200B519a8B9CFA1E7Edd582DD1573581",
	"CDP_MANAGER":                 "0xdcBf58c9640A7bd0e062f8092d70fb981Bb52032",
	"CDP_REGISTRY":                "0x0636E6878703E30aB11Ba13A68C6124d9d252e6B",
	"GET_CDPS":                    "0x7843fd599F5382328DeBB45255deB3E2e0DEC876",
	"PROXY_REGISTRY":              "0x46759093D8158db8BB555aC7C6F98070c56169e7",
	"PROXY_FACTORY":               "0x84eFB9c18059394172D0d69A3E58B03320001871",
	"PROXY_ACTIONS":               "0x4023f89983Ece35e227c49806aFc13Bc0248d178",
	"PROXY_ACTIONS_DSR":           "0x8b31eF27d7708a7e24b43D352e837b9486B2b961",
	"OPERATION_EXECUTOR":          "0xFDFf46fF5752CE2A4CAbAAf5a2cFF3744E1D09de",
	"ETH":                         "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6",
	"MCD_JOIN_ETH_A":              "0x2372031bB0fC735722AA4009AeBf66E8BEAF4BA1",
	"MCD_JOIN_ETH_B":              "0x1710BB6dF1967679bb1f247135794692F7963B46",
	"MCD_JOIN_ETH_C":              "0x16e6490744d4B3728966f8e72416c005EB3dEa79",
	"MCD_JOIN_WBTC_A":             "0x3cbE712a12e651eEAF430472c0C1BF1a2a18939D",
	"MCD_JOIN_WBTC_B":             "0xe0503f29A40Da91beeF8B1831A9F42c71399B810",
	"MCD_JOIN_WBTC_C":             "0xba80Bd08e87c2C0cA2b08d0c6f9652E42B2c18a7",
	"MCD_JOIN_USDT_A":             "0x344F9Bb9AA8FAa49Eb4F15bC8A50eD35a066F18a",
	"PIP_ETH":                     "0x94588e35fF4d2E99ffb8D5095F35d1E37d6dDf12",
	"PIP_WBTC":                    "0xE7de200a3a29E9049E378b52BD36701A0Ce68C3b",
	"PIP_USDT":                    "0x3588A7973D41AaeA7B203549553C991C4311951e",
	"PIP_USDC":                    "0x838212865E2c2f4F7226fCc0A3EFc3EB139eC661",
	"AAVE_PROTOCOL_DATA_PROVIDER": "0x927F584d4321C1dCcBf5e2902368124b02419a1E",
	"AAVE_PRICE_ORACLE":           "0x5bed0810073cc9f0DacF73C648202249E87eF6cB",
	"AAVE_LENDING_POOL":           "0x4bd5643ac6f66a5237E18bfA7d47cF22f1c9F210",
}

// collateralJoins derives the per-ilk join adapter table from an address
// book. The mapping must be total over the card-bearing ilks.
func collateralJoins(addresses map[string]string, ilks []entities.Ilk) map[entities.Ilk]common.Address {
	joins := make(map[entities.Ilk]common.Address, len(ilks))
	for _, ilk := range ilks {
		key := "MCD_JOIN_" + joinKey(ilk)
		if addr, ok := addresses[key]; ok {
			joins[ilk] = common.HexToAddress(addr)
		}
	}
	return joins
}

// osms derives the oracle security module table per collateral.
func osms(addresses map[string]string, collaterals []string) map[string]ContractDesc {
	result := make(map[string]ContractDesc, len(collaterals))
	for _, collateral := range collaterals {
		if addr, ok := addresses["PIP_"+collateral]; ok {
			result[collateral] = contractDesc(OSMABI, addr)
		}
	}
	return result
}

func joinKey(ilk entities.Ilk) string {
	return strings.ReplaceAll(ilk, "-", "_")
}

func contracts(addresses map[string]string) map[string]ContractDesc {
	return map[string]ContractDesc{
		ContractVat:               contractDesc(VatABI, addresses["MCD_VAT"]),
		ContractMcdSpot:           contractDesc(SpotABI, addresses["MCD_SPOT"]),
		ContractMcdJug:            contractDesc(JugABI, addresses["MCD_JUG"]),
		ContractMcdPot:            contractDesc("", addresses["MCD_POT"]),
		ContractMcdEnd:            contractDesc("", addresses["MCD_END"]),
		ContractMcdDog:            contractDesc("", addresses["MCD_DOG"]),
		ContractMcdJoinDai:        contractDesc("", addresses["MCD_JOIN_DAI"]),
		ContractCdpManager:        contractDesc("", addresses["CDP_MANAGER"]),
		ContractCdpRegistry:       contractDesc("", addresses["CDP_REGISTRY"]),
		ContractGetCdps:           contractDesc("", addresses["GET_CDPS"]),
		ContractProxyRegistry:     contractDesc("", addresses["PROXY_REGISTRY"]),
		ContractProxyFactory:      contractDesc("", addresses["PROXY_FACTORY"]),
		ContractProxyActions:      contractDesc("", addresses["PROXY_ACTIONS"]),
		ContractProxyActionsDsr:   contractDesc("", addresses["PROXY_ACTIONS_DSR"]),
		ContractOperationExecutor: contractDesc("", addresses["OPERATION_EXECUTOR"]),
		ContractFlashMintModule:   contractDesc("", addresses["MCD_FLASH"]),
		ContractAaveDataProvider:  contractDesc("", addresses["AAVE_PROTOCOL_DATA_PROVIDER"]),
		ContractAavePriceOracle:   contractDesc("", addresses["AAVE_PRICE_ORACLE"]),
		ContractAaveLendingPool:   contractDesc("", addresses["AAVE_LENDING_POOL"]),
	}
}

var mainnetCollaterals = []string{"ETH", "WBTC", "USDT", "USDC"}

// DefaultNetworks builds the production network registry: mainnet, goerli,
// and a local hardhat fork derived from mainnet. The hardhat record copies
// mainnet and overrides a subset of fields, once, here.
func DefaultNetworks(infuraProjectID, etherscanAPIKey string) *Networks {
	main := NetworkConfig{
		ID:                         "1",
		Name:                       "main",
		Label:                      "Mainnet",
		RPCURL:                     "https://mainnet.infura.io/v3/" + infuraProjectID,
		RPCURLWS:                   "wss://mainnet.infura.io/ws/v3/" + infuraProjectID,
		SafeConfirmations:          10,
		OpenVaultSafeConfirmations: 6,
		Contracts:                  contracts(mainnetAddresses),
		Tokens: map[string]ContractDesc{
			"WETH": contractDesc(ERC20ABI, mainnetAddresses["ETH"]),
			"DAI":  contractDesc(ERC20ABI, mainnetAddresses["MCD_DAI"]),
			"MKR":  contractDesc(ERC20ABI, mainnetAddresses["MCD_GOV"]),
		},
		Joins:       collateralJoins(mainnetAddresses, entities.SupportedIlks),
		OSMs:        osms(mainnetAddresses, mainnetCollaterals),
		Collaterals: mainnetCollaterals,
		TaxProxyRegistries: []common.Address{
			common.HexToAddress("0xaa63c8683647ef91b3fdab4b4989ee9588da297b"),
		},
		Etherscan: EtherscanConfig{
			URL:    "https://etherscan.io",
			APIURL: "https://api.etherscan.io/api",
			APIKey: etherscanAPIKey,
		},
		EthtxURL: "https://ethtx.info/mainnet",
		CacheAPI: "https://oazo-bcache.new.oasis.app/api/v1",
	}

	// Mainnet-only contracts. Deliberately absent from goerli.
	main.Contracts[ContractMerkleRedeemer] = contractDesc("", "0xd9fabf81Ed15ea71FBAd0C1f77529a4755a38054")
	main.Contracts[ContractLidoFarmingReward] = contractDesc("", "0x99ac10631f69c753ddb595d074422a0922d9056b")

	goerli := NetworkConfig{
		ID:                         "5",
		Name:                       "goerli",
		Label:                      "goerli",
		RPCURL:                     "https://goerli.infura.io/v3/" + infuraProjectID,
		RPCURLWS:                   "wss://goerli.infura.io/ws/v3/" + infuraProjectID,
		SafeConfirmations:          6,
		OpenVaultSafeConfirmations: 6,
		Contracts:                  contracts(goerliAddresses),
		Tokens: map[string]ContractDesc{
			"WETH": contractDesc(ERC20ABI, goerliAddresses["ETH"]),
			"DAI":  contractDesc(ERC20ABI, goerliAddresses["MCD_DAI"]),
			"MKR":  contractDesc(ERC20ABI, goerliAddresses["MCD_GOV"]),
		},
		Joins:       collateralJoins(goerliAddresses, entities.SupportedIlks),
		OSMs:        osms(goerliAddresses, mainnetCollaterals),
		Collaterals: mainnetCollaterals,
		TaxProxyRegistries: []common.Address{
			common.HexToAddress(goerliAddresses["PROXY_REGISTRY"]),
		},
		Etherscan: EtherscanConfig{
			URL:    "https://goerli.etherscan.io",
			APIURL: "https://api-goerli.etherscan.io/api",
			APIKey: etherscanAPIKey,
		},
		EthtxURL: "https://ethtx.info/goerli",
		CacheAPI: "https://cache-goerli-staging.gsuprotocol.io/v1",
	}

	hardhat := main
	hardhat.ID = "2137"
	hardhat.Name = "hardhat"
	hardhat.Label = "Hardhat"
	hardhat.RPCURL = "http://localhost:8545"
	hardhat.RPCURLWS = "ws://localhost:8545"
	hardhat.CacheAPI = "https://oazo-bcache-mainnet-staging.new.oasis.app/api/v1"

	return NewNetworks([]NetworkConfig{main, hardhat, goerli})
}
