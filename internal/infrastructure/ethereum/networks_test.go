package ethereum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNetworks(t *testing.T) {
	networks := DefaultNetworks("project-id", "api-key")

	main, ok := networks.ByName("main")
	require.True(t, ok)
	assert.Equal(t, "1", main.ID)
	assert.Contains(t, main.RPCURL, "project-id")

	goerli, ok := networks.ByID("5")
	require.True(t, ok)
	assert.Equal(t, "goerli", goerli.Name)

	hardhat, ok := networks.ByName("hardhat")
	require.True(t, ok)
	assert.Equal(t, "2137", hardhat.ID)
	assert.Equal(t, "http://localhost:8545", hardhat.RPCURL)

	_, ok = networks.ByName("ropsten")
	assert.False(t, ok)
}

func TestHardhatDerivesFromMainnet(t *testing.T) {
	networks := DefaultNetworks("project-id", "api-key")

	main, _ := networks.ByName("main")
	hardhat, _ := networks.ByName("hardhat")

	mainVat, err := main.Contract(ContractVat)
	require.NoError(t, err)
	hardhatVat, err := hardhat.Contract(ContractVat)
	require.NoError(t, err)
	assert.Equal(t, mainVat.Address, hardhatVat.Address)
}

func TestContractRoleResolution(t *testing.T) {
	networks := DefaultNetworks("project-id", "api-key")
	main, _ := networks.ByName("main")
	goerli, _ := networks.ByName("goerli")

	for _, role := range []string{ContractVat, ContractMcdSpot, ContractMcdJug, ContractCdpManager} {
		desc, err := main.Contract(role)
		require.NoError(t, err, "role %s", role)
		assert.NotEqual(t, "0x0000000000000000000000000000000000000000", desc.Address.Hex())
	}

	// the merkle redeemer only exists on mainnet
	_, err := main.Contract(ContractMerkleRedeemer)
	assert.NoError(t, err)
	_, err = goerli.Contract(ContractMerkleRedeemer)
	assert.Error(t, err)
}

func TestJoinResolution(t *testing.T) {
	networks := DefaultNetworks("project-id", "api-key")
	main, _ := networks.ByName("main")

	for _, ilk := range []string{"ETH-A", "ETH-B", "ETH-C", "WBTC-A", "USDT-A"} {
		addr, err := main.Join(ilk)
		require.NoError(t, err, "ilk %s", ilk)
		assert.NotEqual(t, "0x0000000000000000000000000000000000000000", addr.Hex())
	}

	_, err := main.Join("DOGE-A")
	assert.Error(t, err)
}
