// Package onchain reads live collateral state from the GSU core contracts
// and exposes it as the feeds the card pipelines consume.
package onchain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/feed"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/services"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/ethereum"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/metrics"
)

const secondsPerYear = 365 * 24 * 60 * 60

// ray is the 1e27 fixed-point base the core contracts use for rates.
var ray = new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)

// ContractCaller is the slice of the ethereum client the reader needs.
type ContractCaller interface {
	CallContract(ctx context.Context, msg goethereum.CallMsg) ([]byte, error)
	CallBatch(ctx context.Context, calls []goethereum.CallMsg) ([][]byte, error)
}

// IlkReader reads per-ilk risk parameters from the vat, spotter and jug.
type IlkReader struct {
	caller  ContractCaller
	network ethereum.NetworkConfig
	logger  *slog.Logger

	vatABI  abi.ABI
	spotABI abi.ABI
	jugABI  abi.ABI

	vatAddr  common.Address
	spotAddr common.Address
	jugAddr  common.Address
}

// NewIlkReader resolves the core contract roles for the network and parses
// their ABI fragments once.
func NewIlkReader(caller ContractCaller, network ethereum.NetworkConfig, logger *slog.Logger) (*IlkReader, error) {
	r := &IlkReader{caller: caller, network: network, logger: logger}

	for _, role := range []struct {
		name   string
		abiDst *abi.ABI
		addr   *common.Address
	}{
		{ethereum.ContractVat, &r.vatABI, &r.vatAddr},
		{ethereum.ContractMcdSpot, &r.spotABI, &r.spotAddr},
		{ethereum.ContractMcdJug, &r.jugABI, &r.jugAddr},
	} {
		desc, err := network.Contract(role.name)
		if err != nil {
			return nil, err
		}
		parsed, err := abi.JSON(strings.NewReader(desc.ABI))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s abi: %w", role.name, err)
		}
		*role.abiDst = parsed
		*role.addr = desc.Address
	}
	return r, nil
}

// ReadIlk fetches the vat, spotter and jug rows for an ilk in one batch and
// derives the card-facing ilk data. All outputs are WAD fixed-point.
func (r *IlkReader) ReadIlk(ctx context.Context, ilk entities.Ilk) (entities.IlkData, error) {
	token, ok := entities.EntryTokenFor(ilk)
	if !ok {
		return entities.IlkData{}, fmt.Errorf("ilk %s has no entry token mapping", ilk)
	}

	ilkID := ilkToBytes32(ilk)

	vatCall, err := r.vatABI.Pack("ilks", ilkID)
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to pack vat.ilks: %w", err)
	}
	spotCall, err := r.spotABI.Pack("ilks", ilkID)
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to pack spot.ilks: %w", err)
	}
	jugCall, err := r.jugABI.Pack("ilks", ilkID)
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to pack jug.ilks: %w", err)
	}

	start := time.Now()
	results, err := r.caller.CallBatch(ctx, []goethereum.CallMsg{
		{To: &r.vatAddr, Data: vatCall},
		{To: &r.spotAddr, Data: spotCall},
		{To: &r.jugAddr, Data: jugCall},
	})
	metrics.OnchainCallLatency.WithLabelValues("ilk").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OnchainCalls.WithLabelValues("ilk", "error").Inc()
		return entities.IlkData{}, fmt.Errorf("ilk %s state read failed: %w", ilk, err)
	}
	metrics.OnchainCalls.WithLabelValues("ilk", "ok").Inc()

	vatRow, err := r.vatABI.Unpack("ilks", results[0])
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to unpack vat.ilks: %w", err)
	}
	spotRow, err := r.spotABI.Unpack("ilks", results[1])
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to unpack spot.ilks: %w", err)
	}
	jugRow, err := r.jugABI.Unpack("ilks", results[2])
	if err != nil {
		return entities.IlkData{}, fmt.Errorf("failed to unpack jug.ilks: %w", err)
	}

	art := vatRow[0].(*big.Int)  // total normalized debt, WAD
	rate := vatRow[1].(*big.Int) // accumulated rate, RAY
	line := vatRow[3].(*big.Int) // debt ceiling, RAD
	dust := vatRow[4].(*big.Int) // debt floor, RAD
	mat := spotRow[1].(*big.Int) // liquidation ratio, RAY
	duty := jugRow[0].(*big.Int) // per-second stability fee, RAY

	return entities.IlkData{
		Ilk:              ilk,
		Token:            token,
		LiquidationRatio: rayToWad(mat),
		IlkDebtAvailable: debtAvailable(art, rate, line),
		StabilityFee:     annualizedFee(duty),
		DebtFloor:        radToWad(dust),
	}, nil
}

// ReadDebtCeiling returns an ilk's debt ceiling in WAD.
func (r *IlkReader) ReadDebtCeiling(ctx context.Context, ilk entities.Ilk) (*big.Int, error) {
	ilkID := ilkToBytes32(ilk)
	data, err := r.vatABI.Pack("ilks", ilkID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack vat.ilks: %w", err)
	}
	result, err := r.caller.CallContract(ctx, goethereum.CallMsg{To: &r.vatAddr, Data: data})
	if err != nil {
		return nil, fmt.Errorf("ilk %s ceiling read failed: %w", ilk, err)
	}
	row, err := r.vatABI.Unpack("ilks", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack vat.ilks: %w", err)
	}
	return radToWad(row[3].(*big.Int)), nil
}

// ReadOraclePrice derives the current collateral price for a token from the
// vat's spot value and the spotter's liquidation ratio:
//
//	price = spot * par * mat / RAY^2 / 1e9
//
// which inverts the spotter's poke computation without touching the OSM
// (whose read is permissioned).
func (r *IlkReader) ReadOraclePrice(ctx context.Context, token string) (entities.OraclePrice, error) {
	ilk, ok := ilkForToken(token)
	if !ok {
		return entities.OraclePrice{}, fmt.Errorf("no ilk references token %s", token)
	}
	ilkID := ilkToBytes32(ilk)

	vatCall, err := r.vatABI.Pack("ilks", ilkID)
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to pack vat.ilks: %w", err)
	}
	spotCall, err := r.spotABI.Pack("ilks", ilkID)
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to pack spot.ilks: %w", err)
	}
	parCall, err := r.spotABI.Pack("par")
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to pack spot.par: %w", err)
	}

	start := time.Now()
	results, err := r.caller.CallBatch(ctx, []goethereum.CallMsg{
		{To: &r.vatAddr, Data: vatCall},
		{To: &r.spotAddr, Data: spotCall},
		{To: &r.spotAddr, Data: parCall},
	})
	metrics.OnchainCallLatency.WithLabelValues("price").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OnchainCalls.WithLabelValues("price", "error").Inc()
		return entities.OraclePrice{}, fmt.Errorf("price read for %s failed: %w", token, err)
	}
	metrics.OnchainCalls.WithLabelValues("price", "ok").Inc()

	vatRow, err := r.vatABI.Unpack("ilks", results[0])
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to unpack vat.ilks: %w", err)
	}
	spotRow, err := r.spotABI.Unpack("ilks", results[1])
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to unpack spot.ilks: %w", err)
	}
	parRow, err := r.spotABI.Unpack("par", results[2])
	if err != nil {
		return entities.OraclePrice{}, fmt.Errorf("failed to unpack spot.par: %w", err)
	}

	spot := vatRow[2].(*big.Int) // RAY
	mat := spotRow[1].(*big.Int) // RAY
	par := parRow[0].(*big.Int)  // RAY

	price := new(big.Int).Mul(spot, par)
	price.Mul(price, mat)
	price.Div(price, ray)
	price.Div(price, ray)
	price.Div(price, big.NewInt(1e9))

	return entities.OraclePrice{Token: token, CurrentPrice: price}, nil
}

// IlkDataFeed adapts the reader into the pipeline's per-ilk feed: an
// immediate read followed by one per poll interval. Read failures are
// logged and skipped; the next tick retries naturally.
func (r *IlkReader) IlkDataFeed(interval time.Duration) services.IlkDataFeed {
	return func(ilk entities.Ilk) feed.Feed[entities.IlkData] {
		return func(ctx context.Context) <-chan entities.IlkData {
			out := make(chan entities.IlkData)
			go func() {
				defer close(out)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					data, err := r.ReadIlk(ctx, ilk)
					if err != nil {
						r.logger.Warn("ilk data read failed", "ilk", ilk, "error", err)
					} else {
						select {
						case out <- data:
						case <-ctx.Done():
							return
						}
					}
					select {
					case <-ticker.C:
					case <-ctx.Done():
						return
					}
				}
			}()
			return out
		}
	}
}

// OraclePriceFeed adapts the reader into the pipeline's price feed.
func (r *IlkReader) OraclePriceFeed(interval time.Duration) services.OraclePriceFeed {
	return func(args entities.OraclePriceArgs) feed.Feed[entities.OraclePrice] {
		return func(ctx context.Context) <-chan entities.OraclePrice {
			out := make(chan entities.OraclePrice)
			go func() {
				defer close(out)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					price, err := r.ReadOraclePrice(ctx, args.Token)
					if err != nil {
						r.logger.Warn("oracle price read failed", "token", args.Token, "error", err)
					} else {
						select {
						case out <- price:
						case <-ctx.Done():
							return
						}
					}
					select {
					case <-ticker.C:
					case <-ctx.Done():
						return
					}
				}
			}()
			return out
		}
	}
}

// SupportedIlksFeed emits the network's supported ilk set once and holds
// the subscription open; the set is static per network.
func SupportedIlksFeed(network ethereum.NetworkConfig) feed.Feed[[]entities.Ilk] {
	supported := make([]entities.Ilk, 0, len(entities.SupportedIlks))
	for _, ilk := range entities.SupportedIlks {
		if network.Name == "goerli" && containsIlk(entities.IlksNotSupportedOnGoerli, ilk) {
			continue
		}
		supported = append(supported, ilk)
	}
	return func(ctx context.Context) <-chan []entities.Ilk {
		out := make(chan []entities.Ilk, 1)
		out <- supported
		go func() {
			<-ctx.Done()
			close(out)
		}()
		return out
	}
}

func ilkToBytes32(ilk entities.Ilk) [32]byte {
	var id [32]byte
	copy(id[:], ilk)
	return id
}

// ilkForToken picks the first ilk whose entry token matches; price is a
// per-token property so any of its ilks works.
func ilkForToken(token string) (entities.Ilk, bool) {
	for _, mapping := range entities.IlkToEntryToken {
		if mapping.Token == token {
			return mapping.Ilk, true
		}
	}
	return "", false
}

func containsIlk(list []entities.Ilk, ilk entities.Ilk) bool {
	for _, existing := range list {
		if existing == ilk {
			return true
		}
	}
	return false
}

func rayToWad(value *big.Int) *big.Int {
	return new(big.Int).Div(value, big.NewInt(1e9))
}

func radToWad(value *big.Int) *big.Int {
	return new(big.Int).Div(value, ray)
}

// debtAvailable computes the remaining borrowable debt, line - Art*rate,
// clamped at zero and converted RAD to WAD.
func debtAvailable(art, rate, line *big.Int) *big.Int {
	debt := new(big.Int).Mul(art, rate)
	available := new(big.Int).Sub(line, debt)
	if available.Sign() < 0 {
		return big.NewInt(0)
	}
	return radToWad(available)
}

// annualizedFee converts the jug's per-second rate into a yearly fee in
// WAD: duty^secondsPerYear - 1. float64 precision is ample for display.
func annualizedFee(duty *big.Int) *big.Int {
	perSecond, _ := new(big.Float).Quo(new(big.Float).SetInt(duty), new(big.Float).SetInt(ray)).Float64()
	if perSecond <= 0 {
		return big.NewInt(0)
	}
	yearly := math.Pow(perSecond, secondsPerYear) - 1
	if yearly < 0 {
		yearly = 0
	}
	fee, _ := new(big.Float).Mul(big.NewFloat(yearly), big.NewFloat(1e18)).Int(nil)
	return fee
}
