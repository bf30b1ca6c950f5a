package services

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/feed"
)

func newTestHydrator(t *testing.T) *CardHydrator {
	t.Helper()
	registry := entities.NewTokenRegistry(entities.DefaultTokens)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCardHydrator(registry, logger)
}

func collectCards(t *testing.T, ch <-chan []entities.ProductCardData) [][]entities.ProductCardData {
	t.Helper()
	var got [][]entities.ProductCardData
	timeout := time.After(2 * time.Second)
	for {
		select {
		case value, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, value)
		case <-timeout:
			t.Fatalf("card feed did not complete, got %d emissions so far", len(got))
		}
	}
}

func testIlkData(ilk entities.Ilk, token string, available, floor int64) entities.IlkData {
	return entities.IlkData{
		Ilk:              ilk,
		Token:            token,
		LiquidationRatio: big.NewInt(150),
		IlkDebtAvailable: big.NewInt(available),
		StabilityFee:     big.NewInt(1),
		DebtFloor:        big.NewInt(floor),
	}
}

func staticIlkDataFeed(data map[entities.Ilk]entities.IlkData, calls *atomic.Int64) IlkDataFeed {
	return func(ilk entities.Ilk) feed.Feed[entities.IlkData] {
		if calls != nil {
			calls.Add(1)
		}
		return feed.Of(data[ilk])
	}
}

func staticPriceFeed(prices map[string]*big.Int, calls *atomic.Int64) OraclePriceFeed {
	return func(args entities.OraclePriceArgs) feed.Feed[entities.OraclePrice] {
		if calls != nil {
			calls.Add(1)
		}
		return feed.Of(entities.OraclePrice{Token: args.Token, CurrentPrice: prices[args.Token]})
	}
}

func TestProductCardsDataEmptyVisibleIlks(t *testing.T) {
	h := newTestHydrator(t)
	var ilkCalls, priceCalls atomic.Int64

	cards := h.ProductCardsData(
		feed.Of([]entities.Ilk{"ETH-A"}),
		staticIlkDataFeed(nil, &ilkCalls),
		staticPriceFeed(nil, &priceCalls),
		nil,
	)

	got := collectCards(t, cards(context.Background()))
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
	assert.Zero(t, ilkCalls.Load())
	assert.Zero(t, priceCalls.Load())
}

func TestProductCardsDataNoOverlap(t *testing.T) {
	h := newTestHydrator(t)
	var ilkCalls, priceCalls atomic.Int64

	cards := h.ProductCardsData(
		feed.Of([]entities.Ilk{"WBTC-A"}),
		staticIlkDataFeed(nil, &ilkCalls),
		staticPriceFeed(nil, &priceCalls),
		[]entities.Ilk{"ETH-A", "USDT-A"},
	)

	got := collectCards(t, cards(context.Background()))
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
	// no displayed ilks means no upstream subscriptions at all
	assert.Zero(t, ilkCalls.Load())
	assert.Zero(t, priceCalls.Load())
}

func TestProductCardsDataJoin(t *testing.T) {
	h := newTestHydrator(t)

	ilkData := map[entities.Ilk]entities.IlkData{
		"ETH-A":  testIlkData("ETH-A", "ETH", 1000, 100),
		"USDT-A": testIlkData("USDT-A", "USDT", 50, 100),
	}
	prices := map[string]*big.Int{
		"ETH":  big.NewInt(2000),
		"USDT": big.NewInt(1),
	}

	cards := h.ProductCardsData(
		feed.Of([]entities.Ilk{"ETH-A", "USDT-A"}),
		staticIlkDataFeed(ilkData, nil),
		staticPriceFeed(prices, nil),
		[]entities.Ilk{"ETH-A", "USDT-A"},
	)

	got := collectCards(t, cards(context.Background()))
	require.NotEmpty(t, got)
	final := got[len(got)-1]
	require.Len(t, final, 2)

	byIlk := make(map[entities.Ilk]entities.ProductCardData)
	for _, card := range final {
		byIlk[card.Ilk] = card
	}

	eth := byIlk["ETH-A"]
	assert.Equal(t, "ETH", eth.Token)
	assert.Equal(t, big.NewInt(2000), eth.CurrentCollateralPrice)
	assert.Equal(t, "Ether", eth.Name)
	assert.False(t, eth.IsFull)

	usdt := byIlk["USDT-A"]
	assert.Equal(t, big.NewInt(1), usdt.CurrentCollateralPrice)
	// liquidity below the floor closes the ilk to new vaults
	assert.True(t, usdt.IsFull)
}

func TestProductCardsDataUnknownTokenTerminates(t *testing.T) {
	h := newTestHydrator(t)

	ilkData := map[entities.Ilk]entities.IlkData{
		"ETH-A": testIlkData("ETH-A", "NOPE", 1000, 100),
	}

	cards := h.ProductCardsData(
		feed.Of([]entities.Ilk{"ETH-A"}),
		staticIlkDataFeed(ilkData, nil),
		staticPriceFeed(map[string]*big.Int{"NOPE": big.NewInt(1)}, nil),
		[]entities.Ilk{"ETH-A"},
	)

	got := collectCards(t, cards(context.Background()))
	assert.Empty(t, got)
}

func TestProductCardsWithBalance(t *testing.T) {
	h := newTestHydrator(t)
	var priceCalls atomic.Int64

	ilks := []entities.IlkWithBalance{
		{
			IlkData:     testIlkData("ETH-A", "ETH", 1000, 100),
			DebtCeiling: big.NewInt(5000),
			Balance:     big.NewInt(3),
		},
		{
			IlkData:     testIlkData("USDT-A", "USDT", 1000, 100),
			DebtCeiling: big.NewInt(0),
		},
		{
			IlkData: testIlkData("ETH-B", "ETH", 1000, 100),
		},
	}

	cards := h.ProductCardsWithBalance(
		feed.Of(ilks),
		staticPriceFeed(map[string]*big.Int{"ETH": big.NewInt(2000)}, &priceCalls),
	)

	got := collectCards(t, cards(context.Background()))
	require.NotEmpty(t, got)

	// consumers see an empty set before the first recomputation
	assert.Empty(t, got[0])

	final := got[len(got)-1]
	require.Len(t, final, 1)
	assert.Equal(t, entities.Ilk("ETH-A"), final[0].Ilk)
	assert.Equal(t, big.NewInt(3), final[0].Balance)
	assert.Equal(t, big.NewInt(2000), final[0].CurrentCollateralPrice)

	// only the ilk with a positive debt ceiling gets a price subscription
	assert.Equal(t, int64(1), priceCalls.Load())
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name      string
		available *big.Int
		floor     *big.Int
		want      bool
	}{
		{name: "below floor", available: big.NewInt(99), floor: big.NewInt(100), want: true},
		{name: "equal to floor is open", available: big.NewInt(100), floor: big.NewInt(100), want: false},
		{name: "above floor", available: big.NewInt(101), floor: big.NewInt(100), want: false},
		{name: "nil available", available: nil, floor: big.NewInt(100), want: false},
		{name: "nil floor", available: big.NewInt(1), floor: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFull(tt.available, tt.floor))
		})
	}
}
