package entities

import "math/big"

// IlkData is the live per-ilk state delivered by the on-chain reader.
// All amounts are WAD fixed-point (1e18).
type IlkData struct {
	Ilk              Ilk      `json:"ilk"`
	Token            string   `json:"token"`
	LiquidationRatio *big.Int `json:"liquidationRatio"`
	IlkDebtAvailable *big.Int `json:"ilkDebtAvailable"`
	StabilityFee     *big.Int `json:"stabilityFee"`
	DebtFloor        *big.Int `json:"debtFloor"`
}

// OraclePriceArgs selects which token and fields an oracle query is for.
type OraclePriceArgs struct {
	Token         string
	RequestedData []string
}

// OraclePrice is a single oracle observation for a token.
type OraclePrice struct {
	Token        string   `json:"token"`
	CurrentPrice *big.Int `json:"currentPrice"`
	NextPrice    *big.Int `json:"nextPrice,omitempty"`
}

// IlkWithBalance extends IlkData with the connected account's holdings.
type IlkWithBalance struct {
	IlkData
	DebtCeiling       *big.Int `json:"debtCeiling"`
	Balance           *big.Int `json:"balance,omitempty"`
	BalancePriceInUsd *big.Int `json:"balancePriceInUsd,omitempty"`
}

// ProductCardData is the view model behind one displayed product card.
// It is recomputed on every upstream change and never persisted.
type ProductCardData struct {
	Token                  string   `json:"token"`
	Ilk                    Ilk      `json:"ilk"`
	LiquidationRatio       *big.Int `json:"liquidationRatio"`
	LiquidityAvailable     *big.Int `json:"liquidityAvailable"`
	StabilityFee           *big.Int `json:"stabilityFee"`
	DebtFloor              *big.Int `json:"debtFloor"`
	CurrentCollateralPrice *big.Int `json:"currentCollateralPrice"`
	Balance                *big.Int `json:"balance,omitempty"`
	BalanceInUsd           *big.Int `json:"balanceInUsd,omitempty"`

	BannerIcon string   `json:"bannerIcon"`
	BannerGif  string   `json:"bannerGif"`
	Background string   `json:"background"`
	Name       string   `json:"name"`
	Protocol   Protocol `json:"protocol"`

	// IsFull means no further debt can be drawn: the remaining ilk
	// liquidity is below the per-vault debt floor.
	IsFull bool `json:"isFull"`
}
