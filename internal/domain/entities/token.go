package entities

import "math/big"

// Protocol identifies which lending protocol a token belongs to.
type Protocol string

const (
	ProtocolGSU  Protocol = "gsu"
	ProtocolAave Protocol = "aave"
)

// CoinTag is a classification tag drawn from a fixed vocabulary.
type CoinTag string

const (
	TagStablecoin CoinTag = "stablecoin"
	TagLPToken    CoinTag = "lp-token"
)

// Token holds the static metadata for a supported token.
type Token struct {
	Symbol    string   `json:"symbol"`
	Precision uint8    `json:"precision"` // decimal places of the on-chain amount
	Digits    int      `json:"digits"`    // UI rounding digits
	MaxSell   *big.Int `json:"maxSell,omitempty"`
	Name      string   `json:"name"`

	Icon       string `json:"icon"`
	IconCircle string `json:"iconCircle"`
	IconColor  string `json:"iconColor"`
	Color      string `json:"color"`
	Background string `json:"background"`
	BannerIcon string `json:"bannerIcon"`
	BannerGif  string `json:"bannerGif"`

	Tags      []CoinTag `json:"tags"`
	RootToken string    `json:"rootToken,omitempty"` // e.g. WBTC groups under BTC

	CoinpaprikaTicker string `json:"coinpaprikaTicker,omitempty"`
	CoinbaseTicker    string `json:"coinbaseTicker,omitempty"`
	CoinGeckoID       string `json:"coinGeckoId,omitempty"`
	GSURatesTicker    string `json:"gsuRatesTicker,omitempty"`

	Protocol Protocol `json:"protocol"`
}

// HasTag reports whether the token carries the given tag.
func (t Token) HasTag(tag CoinTag) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func maxSell(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), wad())
}

func wad() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

// DefaultTokens is the static token catalog for the GSU deployment. The
// registry is always constructed from an explicit table so tests can supply
// their own; this is the production one.
var DefaultTokens = []Token{
	{
		Symbol:            "STETH",
		Precision:         18,
		Digits:            5,
		Name:              "Lido Staked ETH",
		Icon:              "steth_circle_color",
		IconCircle:        "steth_circle_color",
		IconColor:         "ether_color",
		CoinpaprikaTicker: "steth-lido-staked-ether",
		Color:             "#0B91DD",
		Background:        "linear-gradient(143.37deg, #00A3FF 15.97%, #0B91DD 81.1%), #FFFFFF",
		BannerIcon:        "/static/img/tokens/eth.png",
		BannerGif:         "/static/img/tokens/eth.gif",
		RootToken:         "ETH",
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "MKR",
		Precision:         18,
		Digits:            5,
		Name:              "Maker",
		Icon:              "mkr_circle_color",
		IconCircle:        "mkr_circle_color",
		IconColor:         "ether_color",
		CoinpaprikaTicker: "mkr-maker",
		CoinbaseTicker:    "mkr-usd",
		Color:             "#1AAB9B",
		Background:        "linear-gradient(133.41deg, #1AAB9B 17.25%, #22CAB7 86.54%), #FFFFFF",
		BannerIcon:        "/static/img/tokens/eth.png",
		BannerGif:         "/static/img/tokens/eth.gif",
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "WETH",
		Precision:         18,
		Digits:            5,
		Name:              "Wrapped Ether",
		Icon:              "weth_circle_color",
		IconCircle:        "weth_circle_color",
		IconColor:         "ether_color",
		CoinpaprikaTicker: "weth-weth",
		Color:             "#1AAB9B",
		Background:        "linear-gradient(133.41deg, #1AAB9B 17.25%, #22CAB7 86.54%), #FFFFFF",
		BannerIcon:        "/static/img/tokens/eth.png",
		BannerGif:         "/static/img/tokens/eth.gif",
		RootToken:         "ETH",
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "ETH",
		Precision:         18,
		Digits:            5,
		MaxSell:           maxSell(10_000_000),
		Name:              "Ether",
		Icon:              "ether",
		IconCircle:        "ether_circle_color",
		IconColor:         "ether_color",
		CoinpaprikaTicker: "eth-ethereum",
		CoinbaseTicker:    "eth-usd",
		CoinGeckoID:       "ethereum",
		GSURatesTicker:    "ETH",
		Color:             "#667FE3",
		Background:        "linear-gradient(160.47deg, #F0F3FD 0.35%, #FCF0FD 99.18%), #FFFFFF",
		BannerIcon:        "/static/img/tokens/eth.png",
		BannerGif:         "/static/img/tokens/eth.gif",
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "WBTC",
		Precision:         8,
		Digits:            5,
		MaxSell:           maxSell(1_000_000_000_000_000),
		Name:              "Wrapped Bitcoin",
		Icon:              "wbtc",
		IconCircle:        "wbtc_circle_color",
		IconColor:         "wbtc_circle_color",
		CoinpaprikaTicker: "wbtc-wrapped-bitcoin",
		CoinGeckoID:       "wrapped-bitcoin",
		GSURatesTicker:    "WBTC",
		Color:             "#f09242",
		Background:        "linear-gradient(147.66deg, #FEF1E1 0%, #FDF2CA 88.25%)",
		BannerIcon:        "/static/img/tokens/wbtc.png",
		BannerGif:         "/static/img/tokens/wbtc.gif",
		RootToken:         "BTC",
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "USDC",
		Precision:         6,
		Digits:            6,
		MaxSell:           maxSell(1_000_000_000_000_000),
		Name:              "USD Coin",
		Icon:              "usdc",
		IconCircle:        "usdc_circle_color",
		IconColor:         "usdc_circle_color",
		CoinpaprikaTicker: "usdc-usd-coin",
		Color:             "#2775ca",
		Background:        "linear-gradient(152.45deg, #0666CE 8.53%, #61A9F8 91.7%)",
		BannerIcon:        "/static/img/tokens/usdc.png",
		BannerGif:         "/static/img/tokens/usdc.gif",
		Tags:              []CoinTag{TagStablecoin},
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:            "USDT",
		Precision:         6,
		Digits:            6,
		MaxSell:           maxSell(1_000_000_000_000_000),
		Name:              "Tether USD",
		Icon:              "usdt",
		IconCircle:        "usdt_circle_color",
		IconColor:         "usdt_circle_color",
		CoinpaprikaTicker: "usdt-tether",
		GSURatesTicker:    "USDT",
		Color:             "#259c77",
		Background:        "linear-gradient(152.45deg, #26A17B 8.53%, #61D5A9 91.7%)",
		BannerIcon:        "/static/img/tokens/usdt.png",
		BannerGif:         "/static/img/tokens/usdt.gif",
		Tags:              []CoinTag{TagStablecoin},
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:     "AAVE",
		Precision:  18,
		Digits:     5,
		Name:       "Aave",
		Icon:       "aave_circle_color",
		IconCircle: "aave_circle_color",
		IconColor:  "aave_circle_color",
		Color:      "#ff077d",
		Background: "linear-gradient(286.73deg, #B6509E 2.03%, #2EBAC6 100%)",
		BannerIcon: "/static/img/banner_icons/aave.svg",
		Protocol:   ProtocolAave,
	},
	{
		Symbol:            "DAI",
		Precision:         18,
		Digits:            4,
		MaxSell:           maxSell(10_000_000),
		Name:              "Dai",
		Icon:              "dai",
		IconCircle:        "dai_circle_color",
		IconColor:         "dai_color",
		CoinpaprikaTicker: "dai-dai",
		CoinbaseTicker:    "dai-usd",
		Color:             "#fdc134",
		Tags:              []CoinTag{TagStablecoin},
		Protocol:          ProtocolGSU,
	},
	{
		Symbol:     "stETHeth",
		Precision:  18,
		Digits:     5,
		Name:       "stETH/ETH",
		Icon:       "aave_steth_eth",
		IconCircle: "aave_steth_eth",
		IconColor:  "aave_steth_eth",
		Color:      "#E2F7F9",
		Background: "linear-gradient(160.47deg, #E2F7F9 0.35%, #D3F3F5 99.18%), #000000",
		BannerIcon: "/static/img/tokens/steth-eth.png",
		BannerGif:  "/static/img/tokens/steth-eth.gif",
		Protocol:   ProtocolAave,
	},
	{
		Symbol:     "stETHusdc",
		Precision:  18,
		Digits:     5,
		Name:       "stETH/USDC",
		Icon:       "aave_steth_usdc",
		IconCircle: "aave_steth_usdc",
		IconColor:  "aave_steth_usdc",
		Color:      "#E2F7F9",
		Background: "linear-gradient(160.47deg, #E2F7F9 0.35%, #D3F3F5 99.18%), #000000",
		BannerIcon: "/static/img/tokens/steth-eth.png",
		BannerGif:  "/static/img/tokens/steth-eth.gif",
		Protocol:   ProtocolAave,
	},
}
