package entities

// AssetPage describes one asset landing page and the ilks it references.
type AssetPage struct {
	Slug           string `json:"slug"`
	Header         string `json:"header"`
	Symbol         string `json:"symbol"`
	Icon           string `json:"icon"`
	DescriptionKey string `json:"descriptionKey"`
	Link           string `json:"link"`
	MultiplyIlks   []Ilk  `json:"multiplyIlks,omitempty"`
	BorrowIlks     []Ilk  `json:"borrowIlks,omitempty"`
	EarnIlks       []Ilk  `json:"earnIlks,omitempty"`
}

// AssetPages is the static asset-page catalog.
var AssetPages = []AssetPage{
	{
		Slug:           "eth",
		Header:         "Ethereum",
		Symbol:         "ETH",
		Icon:           "ether_circle_color",
		DescriptionKey: "assets.eth.description",
		Link:           "assets.eth.link",
		MultiplyIlks:   []Ilk{},
		BorrowIlks:     []Ilk{"ETH-A", "ETH-B"},
	},
	{
		Slug:           "usdt",
		Header:         "Tether",
		Symbol:         "USDT",
		Icon:           "usdt_circle_color",
		DescriptionKey: "assets.usdt.description",
		Link:           "assets.usdt.link",
		MultiplyIlks:   []Ilk{},
		BorrowIlks:     []Ilk{"USDT-A"},
	},
	{
		Slug:           "gsuc",
		Header:         "GSUc",
		Symbol:         "GSUc",
		Icon:           "gsu_circle_color",
		DescriptionKey: "assets.dai.description",
		Link:           "assets.dai.link",
		EarnIlks:       []Ilk{"DSR"},
	},
}

var assetPagesBySlug = func() map[string]AssetPage {
	pages := make(map[string]AssetPage, len(AssetPages))
	for _, page := range AssetPages {
		pages[page.Slug] = page
	}
	return pages
}()

// AssetPageBySlug looks up an asset page by URL slug.
func AssetPageBySlug(slug string) (AssetPage, bool) {
	page, ok := assetPagesBySlug[slug]
	return page, ok
}
