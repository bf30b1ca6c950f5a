package ethereum

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
)

// ContractDesc pairs an ABI fragment with a deployed address. The ABI is
// opaque here; callers that issue calls parse it themselves.
type ContractDesc struct {
	ABI     string
	Address common.Address
}

// Contract role names. Every on-chain-calling collaborator resolves its
// target through one of these.
const (
	ContractVat               = "vat"
	ContractMcdJug            = "mcdJug"
	ContractMcdSpot           = "mcdSpot"
	ContractMcdPot            = "mcdPot"
	ContractMcdEnd            = "mcdEnd"
	ContractMcdDog            = "mcdDog"
	ContractMcdJoinDai        = "mcdJoinDai"
	ContractCdpManager        = "dssCdpManager"
	ContractCdpRegistry       = "cdpRegistry"
	ContractGetCdps           = "getCdps"
	ContractProxyRegistry     = "dsProxyRegistry"
	ContractProxyFactory      = "dsProxyFactory"
	ContractProxyActions      = "dssProxyActions"
	ContractProxyActionsDsr   = "dssProxyActionsDsr"
	ContractMerkleRedeemer    = "merkleRedeemer"
	ContractOperationExecutor = "operationExecutor"
	ContractFlashMintModule   = "fmm"
	ContractAaveDataProvider  = "aaveProtocolDataProvider"
	ContractAavePriceOracle   = "aavePriceOracle"
	ContractAaveLendingPool   = "aaveLendingPool"
	ContractLidoFarmingReward = "lidoCrvLiquidityFarmingReward"
)

// EtherscanConfig points at a network's block explorer.
type EtherscanConfig struct {
	URL    string
	APIURL string
	APIKey string
}

// NetworkConfig is the full static configuration of one supported network.
// Records are independent at runtime; derived networks are built by copying
// a base record once at construction.
type NetworkConfig struct {
	ID    string // chain id as a string
	Name  string
	Label string

	RPCURL   string
	RPCURLWS string

	SafeConfirmations          int
	OpenVaultSafeConfirmations int

	Contracts   map[string]ContractDesc
	Tokens      map[string]ContractDesc // per-token ERC20 descriptors
	Joins       map[entities.Ilk]common.Address
	OSMs        map[string]ContractDesc
	Collaterals []string

	TaxProxyRegistries []common.Address
	Etherscan          EtherscanConfig
	EthtxURL           string
	CacheAPI           string
}

// Contract resolves a contract role. A missing role means the feature is
// not deployed on this network; callers must treat it as unsupported.
func (n NetworkConfig) Contract(role string) (ContractDesc, error) {
	desc, ok := n.Contracts[role]
	if !ok {
		return ContractDesc{}, fmt.Errorf("contract %q is not deployed on network %s", role, n.Name)
	}
	return desc, nil
}

// Join resolves the collateral join adapter for an ilk.
func (n NetworkConfig) Join(ilk entities.Ilk) (common.Address, error) {
	addr, ok := n.Joins[ilk]
	if !ok {
		return common.Address{}, fmt.Errorf("no join adapter for ilk %s on network %s", ilk, n.Name)
	}
	return addr, nil
}

// Networks is the immutable per-process network registry.
type Networks struct {
	byID   map[string]NetworkConfig
	byName map[string]NetworkConfig
}

// NewNetworks builds the registry from an ordered configuration list.
func NewNetworks(configs []NetworkConfig) *Networks {
	n := &Networks{
		byID:   make(map[string]NetworkConfig, len(configs)),
		byName: make(map[string]NetworkConfig, len(configs)),
	}
	for _, config := range configs {
		n.byID[config.ID] = config
		n.byName[config.Name] = config
	}
	return n
}

// ByID looks a network up by chain id.
func (n *Networks) ByID(id string) (NetworkConfig, bool) {
	config, ok := n.byID[id]
	return config, ok
}

// ByName looks a network up by name.
func (n *Networks) ByName(name string) (NetworkConfig, bool) {
	config, ok := n.byName[name]
	return config, ok
}
