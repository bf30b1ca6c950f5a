package entities

// Ilk is a collateral-type identifier in the GSU system, e.g. "ETH-A".
type Ilk = string

// SupportedIlks is the closed set of collateral types the protocol knows
// about. Everything the UI derives cards for must come from this list.
var SupportedIlks = []Ilk{
	"ETH-A",
	"ETH-B",
	"ETH-C",
	"DAI",
	"WBTC-A",
	"WBTC-B",
	"WBTC-C",
	"USDT-A",
}

// IlkTokenMap pairs an ilk with its entry token.
type IlkTokenMap struct {
	Ilk   Ilk    `json:"ilk"`
	Token string `json:"token"`
}

// IlkToEntryToken maps each card-bearing ilk to the token used as its
// collateral. This mapping must cover every ilk the pages display;
// deriving a card for an unmapped ilk is a configuration error.
var IlkToEntryToken = []IlkTokenMap{
	{Ilk: "ETH-A", Token: "ETH"},
	{Ilk: "ETH-B", Token: "ETH"},
	{Ilk: "ETH-C", Token: "ETH"},
	{Ilk: "USDT-A", Token: "USDT"},
}

// EntryTokenFor resolves the entry token for an ilk from the static mapping.
func EntryTokenFor(ilk Ilk) (string, bool) {
	for _, mapping := range IlkToEntryToken {
		if mapping.Ilk == ilk {
			return mapping.Token, true
		}
	}
	return "", false
}

// Product pages group ilks by what a user does with them.
var (
	SupportedBorrowIlks   = []Ilk{"ETH-A", "ETH-B", "USDT-A"}
	SupportedMultiplyIlks = []Ilk{}
	SupportedEarnIlks     = []Ilk{}
)

// IlksNotSupportedOnGoerli lists ilks absent from the goerli deployment.
var IlksNotSupportedOnGoerli = []Ilk{
	"GUNIV3DAIUSDC1-A",
	"GUNIV3DAIUSDC2-A",
}

var automationIlksByNetwork = map[string][]Ilk{
	"main":   {"ETH-A", "ETH-B", "ETH-C", "WBTC-A", "WBTC-B", "WBTC-C"},
	"goerli": {"ETH-A", "ETH-B", "ETH-C", "WBTC-A", "WBTC-B", "WBTC-C"},
}

// AllowedAutomationIlks returns the automation-eligible ilks for a network.
// Unknown networks get the mainnet set; the function is total so callers
// never hit a nil map entry.
func AllowedAutomationIlks(network string) []Ilk {
	if ilks, ok := automationIlksByNetwork[network]; ok {
		return ilks
	}
	return automationIlksByNetwork["main"]
}

// IsSupportedAutomationIlk reports whether automation is enabled for an ilk
// on the given network.
func IsSupportedAutomationIlk(network string, ilk Ilk) bool {
	return contains(AllowedAutomationIlks(network), ilk)
}
