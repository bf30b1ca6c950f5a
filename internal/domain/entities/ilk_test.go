package entities

import "testing"

func TestEntryTokenFor(t *testing.T) {
	tests := []struct {
		ilk    Ilk
		want   string
		wantOK bool
	}{
		{ilk: "ETH-A", want: "ETH", wantOK: true},
		{ilk: "ETH-B", want: "ETH", wantOK: true},
		{ilk: "ETH-C", want: "ETH", wantOK: true},
		{ilk: "USDT-A", want: "USDT", wantOK: true},
		{ilk: "WBTC-A", want: "", wantOK: false},
		{ilk: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.ilk, func(t *testing.T) {
			got, ok := EntryTokenFor(tt.ilk)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("EntryTokenFor(%q) = (%q, %v), want (%q, %v)", tt.ilk, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIlkToEntryTokenCoversBorrowIlks(t *testing.T) {
	for _, ilk := range SupportedBorrowIlks {
		if _, ok := EntryTokenFor(ilk); !ok {
			t.Errorf("borrow ilk %q has no entry token mapping", ilk)
		}
	}
}

func TestAllowedAutomationIlks(t *testing.T) {
	main := AllowedAutomationIlks("main")
	if len(main) == 0 {
		t.Fatal("mainnet automation ilks must not be empty")
	}

	// unknown networks fall back to the mainnet set
	unknown := AllowedAutomationIlks("hardhat")
	if len(unknown) != len(main) {
		t.Fatalf("AllowedAutomationIlks(hardhat) = %v, want mainnet set %v", unknown, main)
	}
	for i := range main {
		if unknown[i] != main[i] {
			t.Errorf("fallback set differs at %d: %q != %q", i, unknown[i], main[i])
		}
	}
}

func TestIsSupportedAutomationIlk(t *testing.T) {
	tests := []struct {
		network string
		ilk     Ilk
		want    bool
	}{
		{network: "main", ilk: "ETH-A", want: true},
		{network: "main", ilk: "WBTC-C", want: true},
		{network: "main", ilk: "USDT-A", want: false},
		{network: "goerli", ilk: "ETH-B", want: true},
		{network: "unknown", ilk: "ETH-A", want: true},
		{network: "unknown", ilk: "DAI", want: false},
	}

	for _, tt := range tests {
		if got := IsSupportedAutomationIlk(tt.network, tt.ilk); got != tt.want {
			t.Errorf("IsSupportedAutomationIlk(%q, %q) = %v, want %v", tt.network, tt.ilk, got, tt.want)
		}
	}
}
