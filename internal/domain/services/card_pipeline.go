package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/feed"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/metrics"
)

// IlkDataFeed delivers live per-ilk state; one subscription per ilk.
type IlkDataFeed func(ilk entities.Ilk) feed.Feed[entities.IlkData]

// OraclePriceFeed delivers oracle observations for a token.
type OraclePriceFeed func(args entities.OraclePriceArgs) feed.Feed[entities.OraclePrice]

// CardHydrator joins live ilk and price feeds with the static token catalog
// into product card view models. Each upstream emission triggers a full
// recomputation of the output set; nothing is cached between emissions.
type CardHydrator struct {
	registry *entities.TokenRegistry
	logger   *slog.Logger
}

// NewCardHydrator creates a hydrator over the given registry.
func NewCardHydrator(registry *entities.TokenRegistry, logger *slog.Logger) *CardHydrator {
	return &CardHydrator{registry: registry, logger: logger}
}

// ProductCardsData builds the card feed for a page's visible ilks.
//
// An empty visibleIlks list short-circuits to a single empty emission with
// no upstream subscriptions, and so does a supported-ilks emission that
// leaves nothing to display. Otherwise per-ilk data and per-token prices
// are fetched concurrently, both iterating the same displayed-ilk order so
// the positional join below stays valid.
func (h *CardHydrator) ProductCardsData(
	supportedIlks feed.Feed[[]entities.Ilk],
	ilkData IlkDataFeed,
	oraclePrice OraclePriceFeed,
	visibleIlks []entities.Ilk,
) feed.Feed[[]entities.ProductCardData] {
	if len(visibleIlks) == 0 {
		return feed.Of([]entities.ProductCardData{})
	}

	hydratedIlkData := feed.SwitchMap(supportedIlks, func(supported []entities.Ilk) feed.Feed[[]entities.IlkData] {
		displayed := make([]entities.Ilk, 0, len(visibleIlks))
		for _, ilk := range visibleIlks {
			if containsIlk(supported, ilk) {
				displayed = append(displayed, ilk)
			}
		}
		if len(displayed) == 0 {
			return feed.Of([]entities.IlkData{})
		}
		feeds := make([]feed.Feed[entities.IlkData], len(displayed))
		for i, ilk := range displayed {
			feeds[i] = ilkData(ilk)
		}
		return feed.CombineLatest(feeds)
	})

	hydratedPrices := feed.SwitchMap(hydratedIlkData, func(ilkDatas []entities.IlkData) feed.Feed[[]entities.OraclePrice] {
		if len(ilkDatas) == 0 {
			return feed.Of([]entities.OraclePrice{})
		}
		feeds := make([]feed.Feed[entities.OraclePrice], len(ilkDatas))
		for i, data := range ilkDatas {
			feeds[i] = oraclePrice(entities.OraclePriceArgs{
				Token:         data.Token,
				RequestedData: []string{"currentPrice"},
			})
		}
		return feed.CombineLatest(feeds)
	})

	joined := feed.CombineLatest2(hydratedIlkData, hydratedPrices)

	return func(ctx context.Context) <-chan []entities.ProductCardData {
		out := make(chan []entities.ProductCardData)
		go func() {
			defer close(out)
			for snapshot := range joined(ctx) {
				if !aligned(snapshot.First, snapshot.Second) {
					// The two branches re-derive after a supported-ilks
					// change at slightly different times; skip until both
					// reflect the same displayed-ilk list.
					continue
				}
				cards, err := h.hydrate(snapshot.First, snapshot.Second)
				if err != nil {
					h.logger.Error("product card hydration failed", "error", err)
					return
				}
				metrics.CardRecomputations.WithLabelValues("product_cards").Inc()
				select {
				case out <- cards:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// ProductCardsWithBalance builds the balance-aware card feed. It emits an
// empty set immediately so consumers never observe a pending state, then
// recomputes per balance-list emission, fetching prices only for ilks with
// a positive debt ceiling.
func (h *CardHydrator) ProductCardsWithBalance(
	ilksWithBalance feed.Feed[[]entities.IlkWithBalance],
	oraclePrice OraclePriceFeed,
) feed.Feed[[]entities.ProductCardData] {
	type snapshot struct {
		ilks   []entities.IlkWithBalance
		prices []entities.OraclePrice
	}

	snapshots := feed.SwitchMap(ilksWithBalance, func(list []entities.IlkWithBalance) feed.Feed[snapshot] {
		eligible := make([]entities.IlkWithBalance, 0, len(list))
		for _, ilk := range list {
			if ilk.DebtCeiling != nil && ilk.DebtCeiling.Sign() > 0 {
				eligible = append(eligible, ilk)
			}
		}
		if len(eligible) == 0 {
			return feed.Of(snapshot{})
		}
		feeds := make([]feed.Feed[entities.OraclePrice], len(eligible))
		for i, ilk := range eligible {
			feeds[i] = oraclePrice(entities.OraclePriceArgs{
				Token:         ilk.Token,
				RequestedData: []string{"currentPrice"},
			})
		}
		return feed.Map(feed.CombineLatest(feeds), func(prices []entities.OraclePrice) snapshot {
			return snapshot{ilks: eligible, prices: prices}
		})
	})

	cards := func(ctx context.Context) <-chan []entities.ProductCardData {
		out := make(chan []entities.ProductCardData)
		go func() {
			defer close(out)
			for s := range snapshots(ctx) {
				result, err := h.hydrateWithBalance(s.ilks, s.prices)
				if err != nil {
					h.logger.Error("balance card hydration failed", "error", err)
					return
				}
				metrics.CardRecomputations.WithLabelValues("with_balance").Inc()
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}

	return feed.StartWith(cards, []entities.ProductCardData{})
}

// aligned verifies the positional correspondence the join depends on: both
// slices derive from the same displayed-ilk order.
func aligned(ilkDatas []entities.IlkData, prices []entities.OraclePrice) bool {
	if len(ilkDatas) != len(prices) {
		return false
	}
	for i, data := range ilkDatas {
		if prices[i].Token != data.Token {
			return false
		}
	}
	return true
}

func (h *CardHydrator) hydrate(ilkDatas []entities.IlkData, prices []entities.OraclePrice) ([]entities.ProductCardData, error) {
	cards := make([]entities.ProductCardData, 0, len(ilkDatas))
	for i, data := range ilkDatas {
		token, err := h.registry.GetToken(data.Token)
		if err != nil {
			return nil, fmt.Errorf("ilk %s: %w", data.Ilk, err)
		}
		cards = append(cards, entities.ProductCardData{
			Token:                  data.Token,
			Ilk:                    data.Ilk,
			LiquidationRatio:       data.LiquidationRatio,
			LiquidityAvailable:     data.IlkDebtAvailable,
			StabilityFee:           data.StabilityFee,
			DebtFloor:              data.DebtFloor,
			CurrentCollateralPrice: prices[i].CurrentPrice,
			BannerIcon:             token.BannerIcon,
			BannerGif:              token.BannerGif,
			Background:             token.Background,
			Name:                   token.Name,
			Protocol:               token.Protocol,
			IsFull:                 isFull(data.IlkDebtAvailable, data.DebtFloor),
		})
	}
	return cards, nil
}

func (h *CardHydrator) hydrateWithBalance(ilks []entities.IlkWithBalance, prices []entities.OraclePrice) ([]entities.ProductCardData, error) {
	cards := make([]entities.ProductCardData, 0, len(ilks))
	for i, ilk := range ilks {
		token, err := h.registry.GetToken(ilk.Token)
		if err != nil {
			return nil, fmt.Errorf("ilk %s: %w", ilk.Ilk, err)
		}
		cards = append(cards, entities.ProductCardData{
			Token:                  ilk.Token,
			Ilk:                    ilk.Ilk,
			LiquidationRatio:       ilk.LiquidationRatio,
			LiquidityAvailable:     ilk.IlkDebtAvailable,
			StabilityFee:           ilk.StabilityFee,
			DebtFloor:              ilk.DebtFloor,
			CurrentCollateralPrice: prices[i].CurrentPrice,
			Balance:                ilk.Balance,
			BalanceInUsd:           ilk.BalancePriceInUsd,
			BannerIcon:             token.BannerIcon,
			BannerGif:              token.BannerGif,
			Background:             token.Background,
			Name:                   token.Name,
			Protocol:               token.Protocol,
			IsFull:                 isFull(ilk.IlkDebtAvailable, ilk.DebtFloor),
		})
	}
	return cards, nil
}

// isFull is a strict less-than: available liquidity below the debt floor
// means no further vault can be opened.
func isFull(available, debtFloor *big.Int) bool {
	if available == nil || debtFloor == nil {
		return false
	}
	return available.Cmp(debtFloor) < 0
}
