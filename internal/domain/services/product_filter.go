package services

import (
	"math/big"
	"sort"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
)

// ProductType names one of the product pages.
type ProductType string

const (
	ProductBorrow   ProductType = "borrow"
	ProductMultiply ProductType = "multiply"
	ProductEarn     ProductType = "earn"
)

// Filter key names. Any other value passed to a page function is treated
// as a literal token symbol.
const (
	FilterFeatured = "Featured"
	FilterETH      = "ETH"
	FilterBTC      = "BTC"
	FilterUSDT     = "USDT"
)

// ProductLandingPagesFilter is one selectable card filter on a product page.
type ProductLandingPagesFilter struct {
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	URLFragment string   `json:"urlFragment"`
	Tokens      []string `json:"tokens"`
}

// DescriptionLink points a card description at its docs page.
type DescriptionLink struct {
	Link string `json:"link"`
	Name string `json:"name"`
}

// ProductPageConfig drives filtering and ordering for one product page.
type ProductPageConfig struct {
	CardsFilters     []ProductLandingPagesFilter
	FeaturedIlkCards []entities.Ilk
	InactiveIlks     []entities.Ilk
	Ordering         map[string][]entities.Ilk
	Tags             map[entities.Ilk]string
}

// LandingConfig selects the cards featured on the landing page.
type LandingConfig struct {
	FeaturedIlkCards map[ProductType][]entities.Ilk
}

// ProductCardsConfig is the full static card configuration.
type ProductCardsConfig struct {
	Borrow   ProductPageConfig
	Multiply ProductPageConfig
	Earn     ProductPageConfig
	Landing  LandingConfig

	DescriptionCustomKeys map[entities.Ilk]string
	DescriptionLinks      map[entities.Ilk]DescriptionLink
}

var (
	featuredFilter = ProductLandingPagesFilter{Name: FilterFeatured, Icon: "star_circle", URLFragment: "featured", Tokens: []string{}}
	ethFilter      = ProductLandingPagesFilter{Name: FilterETH, Icon: "eth_circle", URLFragment: "eth", Tokens: []string{"ETH", "WETH"}}
	btcFilter      = ProductLandingPagesFilter{Name: FilterBTC, Icon: "btc_circle", URLFragment: "btc", Tokens: []string{"WBTC"}}
	usdtFilter     = ProductLandingPagesFilter{Name: FilterUSDT, Icon: "usdt_circle", URLFragment: "usdt", Tokens: []string{"USDT"}}
)

// DefaultProductCardsConfig is the card configuration for the GSU deployment.
func DefaultProductCardsConfig() ProductCardsConfig {
	return ProductCardsConfig{
		Borrow: ProductPageConfig{
			CardsFilters:     []ProductLandingPagesFilter{featuredFilter, ethFilter, usdtFilter},
			FeaturedIlkCards: []entities.Ilk{"ETH-A", "ETH-B", "ETH-C", "USDT-A"},
			InactiveIlks:     []entities.Ilk{},
			Ordering: map[string][]entities.Ilk{
				FilterETH:  {"ETH-A", "ETH-B"},
				FilterUSDT: {"USDT-A"},
			},
			Tags: map[entities.Ilk]string{
				"ETH-A": "lowest-fees-for-borrowing",
			},
		},
		Multiply: ProductPageConfig{
			CardsFilters:     []ProductLandingPagesFilter{featuredFilter, ethFilter, btcFilter},
			FeaturedIlkCards: []entities.Ilk{},
			InactiveIlks:     []entities.Ilk{},
			Ordering: map[string][]entities.Ilk{
				FilterETH: {},
				FilterBTC: {},
			},
			Tags: map[entities.Ilk]string{},
		},
		Earn: ProductPageConfig{
			CardsFilters:     []ProductLandingPagesFilter{},
			FeaturedIlkCards: []entities.Ilk{},
			InactiveIlks:     []entities.Ilk{},
			Ordering:         map[string][]entities.Ilk{},
			Tags:             map[entities.Ilk]string{},
		},
		Landing: LandingConfig{
			FeaturedIlkCards: map[ProductType][]entities.Ilk{
				ProductBorrow:   {"ETH-A", "ETH-B", "ETH-C", "USDT-A"},
				ProductMultiply: {},
				ProductEarn:     {"DSR"},
			},
		},
		DescriptionCustomKeys: map[entities.Ilk]string{
			"ETH-A":  "medium-exposure-medium-cost",
			"ETH-B":  "biggest-multiply",
			"ETH-C":  "lowest-stabilityFee-and-cheapest",
			"USDT-A": "lowest-stabilityFee-and-cheapest",
			"WBTC-A": "medium-exposure-medium-cost",
			"WBTC-B": "biggest-multiply",
			"WBTC-C": "lowest-stabilityFee-and-cheapest",
		},
		DescriptionLinks: map[entities.Ilk]DescriptionLink{
			"ETH-A":  {Link: "/inprogress", Name: "GSU (ETH-A)"},
			"ETH-B":  {Link: "/inprogress", Name: "GSU (ETH-B)"},
			"ETH-C":  {Link: "/inprogress", Name: "GSU (ETH-C)"},
			"WBTC-A": {Link: "/inprogress", Name: "GSU (WBTC-A)"},
			"WBTC-B": {Link: "/inprogress", Name: "GSU (WBTC-B)"},
			"WBTC-C": {Link: "/inprogress", Name: "GSU (WBTC-C)"},
			"USDT-A": {Link: "/inprogress", Name: "GSU (USDT-A)"},
		},
	}
}

// ProductCatalog combines the token registry with the static card
// configuration and answers all page-level filtering questions. Lookup
// tables are built once at construction; no mutation afterwards.
type ProductCatalog struct {
	registry *entities.TokenRegistry
	config   ProductCardsConfig

	filtersByURLFragment map[string]ProductLandingPagesFilter
	filtersByToken       map[string]ProductLandingPagesFilter
}

// NewProductCatalog builds the catalog and its lookup tables.
func NewProductCatalog(registry *entities.TokenRegistry, config ProductCardsConfig) *ProductCatalog {
	c := &ProductCatalog{
		registry:             registry,
		config:               config,
		filtersByURLFragment: make(map[string]ProductLandingPagesFilter),
		filtersByToken:       make(map[string]ProductLandingPagesFilter),
	}

	// Last writer wins on token collisions, matching flatten-then-reduce
	// table construction.
	for _, filter := range []ProductLandingPagesFilter{featuredFilter, ethFilter, btcFilter, usdtFilter} {
		c.filtersByURLFragment[filter.URLFragment] = filter
		for _, token := range filter.Tokens {
			c.filtersByToken[token] = filter
		}
	}
	return c
}

// Config exposes the static card configuration.
func (c *ProductCatalog) Config() ProductCardsConfig {
	return c.config
}

// MapURLFragmentToFilter resolves a filter by its URL fragment.
func (c *ProductCatalog) MapURLFragmentToFilter(fragment string) (ProductLandingPagesFilter, bool) {
	filter, ok := c.filtersByURLFragment[fragment]
	return filter, ok
}

// MapTokenToFilter resolves a filter by one of its member tokens.
func (c *ProductCatalog) MapTokenToFilter(token string) (ProductLandingPagesFilter, bool) {
	filter, ok := c.filtersByToken[token]
	return filter, ok
}

// SortCards orders ilk/token pairs for a filter. Without a filter key the
// input order is preserved. With a key that has an explicit order list,
// items sort stably by their ilk's index in that list; ilks absent from the
// list sort after all listed ones, keeping their relative order.
func SortCards(items []entities.IlkTokenMap, ordering map[string][]entities.Ilk, cardsFilter string) []entities.IlkTokenMap {
	if cardsFilter == "" {
		return items
	}
	orderForFilter, ok := ordering[cardsFilter]
	if !ok {
		return items
	}

	rank := func(ilk entities.Ilk) int {
		for i, candidate := range orderForFilter {
			if candidate == ilk {
				return i
			}
		}
		return len(orderForFilter) // unlisted sorts last
	}

	sorted := make([]entities.IlkTokenMap, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i].Ilk) < rank(sorted[j].Ilk)
	})
	return sorted
}

func (c *ProductCatalog) btcCards(mapping []entities.IlkTokenMap) []entities.IlkTokenMap {
	return filterCards(mapping, func(item entities.IlkTokenMap) bool {
		return c.registry.IsBTCToken(item.Token)
	})
}

func (c *ProductCatalog) ethCards(mapping []entities.IlkTokenMap) []entities.IlkTokenMap {
	return filterCards(mapping, func(item entities.IlkTokenMap) bool {
		return c.registry.IsETHToken(item.Token)
	})
}

func (c *ProductCatalog) pageCards(page ProductPageConfig, mapping []entities.IlkTokenMap, cardsFilter string) []entities.IlkTokenMap {
	mapping = SortCards(mapping, page.Ordering, cardsFilter)

	switch cardsFilter {
	case FilterFeatured:
		return filterCards(mapping, func(item entities.IlkTokenMap) bool {
			return containsIlk(page.FeaturedIlkCards, item.Ilk)
		})
	case FilterBTC:
		return c.btcCards(mapping)
	case FilterETH:
		return c.ethCards(mapping)
	}
	return filterCards(mapping, func(item entities.IlkTokenMap) bool {
		return item.Token == cardsFilter
	})
}

// BorrowPageCards selects and orders the borrow page's ilk/token pairs.
func (c *ProductCatalog) BorrowPageCards(mapping []entities.IlkTokenMap, cardsFilter string) []entities.IlkTokenMap {
	return c.pageCards(c.config.Borrow, mapping, cardsFilter)
}

// MultiplyPageCards selects and orders the multiply page's ilk/token pairs.
func (c *ProductCatalog) MultiplyPageCards(mapping []entities.IlkTokenMap, cardsFilter string) []entities.IlkTokenMap {
	return c.pageCards(c.config.Multiply, mapping, cardsFilter)
}

// EarnPageCards restricts to the earn page's featured ilks. The earn page
// has no filter control.
func (c *ProductCatalog) EarnPageCards(mapping []entities.IlkTokenMap) []entities.IlkTokenMap {
	return filterCards(mapping, func(item entities.IlkTokenMap) bool {
		return containsIlk(c.config.Earn.FeaturedIlkCards, item.Ilk)
	})
}

// LandingPageCards selects the hydrated cards featured on the landing page
// for a product.
func (c *ProductCatalog) LandingPageCards(cards []entities.ProductCardData, product ProductType) []entities.ProductCardData {
	featured := c.config.Landing.FeaturedIlkCards[product]
	selected := make([]entities.ProductCardData, 0, len(cards))
	for _, card := range cards {
		if containsIlk(featured, card.Ilk) {
			selected = append(selected, card)
		}
	}
	return selected
}

// notSupportedAnymoreLPTokens are retired LP collaterals that must never
// surface on product pages again.
var notSupportedAnymoreLPTokens = []string{
	"UNIV2ETHUSDT",
	"UNIV2LINKETH",
	"UNIV2AAVEETH",
	"UNIV2DAIUSDT",
	"UNIV2DAIETH",
	"UNIV2WBTCETH",
	"UNIV2UNIETH",
	"UNIV2WBTCDAI",
}

// onlyMultiplyTokens are collaterals restricted to the multiply product.
// Currently none, but UniLPCards still honours the list.
var onlyMultiplyTokens = []string{}

// UniLPCards keeps only active Uniswap LP collaterals.
func (c *ProductCatalog) UniLPCards(mapping []entities.IlkTokenMap) []entities.IlkTokenMap {
	return filterCards(mapping, func(item entities.IlkTokenMap) bool {
		if !containsString(c.registry.LPTokens(), item.Token) {
			return false
		}
		if containsString(onlyMultiplyTokens, item.Token) {
			return false
		}
		return !containsString(notSupportedAnymoreLPTokens, item.Token)
	})
}

// CardFiltersFromBalances maps each card the user holds a positive balance
// in back to its token, for pre-selecting filters.
func CardFiltersFromBalances(cards []entities.ProductCardData) []string {
	tokens := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.Balance != nil && card.Balance.Cmp(big.NewInt(0)) > 0 {
			tokens = append(tokens, card.Token)
		}
	}
	return tokens
}

func filterCards(mapping []entities.IlkTokenMap, keep func(entities.IlkTokenMap) bool) []entities.IlkTokenMap {
	selected := make([]entities.IlkTokenMap, 0, len(mapping))
	for _, item := range mapping {
		if keep(item) {
			selected = append(selected, item)
		}
	}
	return selected
}

func containsIlk(list []entities.Ilk, ilk entities.Ilk) bool {
	for _, existing := range list {
		if existing == ilk {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	for _, existing := range list {
		if existing == value {
			return true
		}
	}
	return false
}
