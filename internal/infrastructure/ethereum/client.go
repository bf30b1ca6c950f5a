package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps the go-ethereum client, pinned to one configured network.
type Client struct {
	client  *ethclient.Client
	network NetworkConfig
	chainID *big.Int
	mu      sync.RWMutex
}

// NewClient dials the network's RPC endpoint and verifies the chain id
// matches the configuration.
func NewClient(network NetworkConfig) (*Client, error) {
	client, err := ethclient.Dial(network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s rpc: %w", network.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if chainID.String() != network.ID {
		client.Close()
		return nil, fmt.Errorf("rpc chain id %s does not match network %s (%s)", chainID, network.Name, network.ID)
	}

	return &Client{
		client:  client,
		network: network,
		chainID: chainID,
	}, nil
}

// Close closes the underlying client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client.Close()
}

// Network returns the configuration the client was built from.
func (c *Client) Network() NetworkConfig {
	return c.network
}

// ChainID returns the chain ID.
func (c *Client) ChainID() *big.Int {
	return c.chainID
}

// CallContract executes a read-only contract call against latest state.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client.CallContract(ctx, msg, nil)
}

// BlockNumber returns the current block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client.BlockNumber(ctx)
}

// CallBatch performs multiple contract calls as concurrent in-flight
// requests. Results are positional: results[i] corresponds to calls[i].
// The first error encountered is returned alongside whatever completed.
func (c *Client) CallBatch(ctx context.Context, calls []ethereum.CallMsg) ([][]byte, error) {
	results := make([][]byte, len(calls))
	errs := make([]error, len(calls))
	var wg sync.WaitGroup

	// Bound outstanding requests so we don't overwhelm the RPC.
	semaphore := make(chan struct{}, 10)

	for i, call := range calls {
		wg.Add(1)
		go func(idx int, msg ethereum.CallMsg) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := c.CallContract(ctx, msg)
			results[idx] = result
			errs[idx] = err
		}(i, call)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
