package entities

import (
	"errors"
	"testing"
)

func TestGetToken(t *testing.T) {
	registry := NewTokenRegistry(DefaultTokens)

	tests := []struct {
		name    string
		symbol  string
		wantErr bool
	}{
		{name: "known token", symbol: "ETH", wantErr: false},
		{name: "known collateral", symbol: "WBTC", wantErr: false},
		{name: "unknown symbol", symbol: "NOPE", wantErr: true},
		{name: "empty symbol", symbol: "", wantErr: true},
		{name: "case sensitive", symbol: "eth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := registry.GetToken(tt.symbol)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("GetToken(%q) expected error, got %+v", tt.symbol, token)
				}
				if !errors.Is(err, ErrTokenNotFound) {
					t.Errorf("GetToken(%q) error = %v, want ErrTokenNotFound", tt.symbol, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetToken(%q) unexpected error: %v", tt.symbol, err)
			}
			if token.Symbol != tt.symbol {
				t.Errorf("GetToken(%q).Symbol = %q", tt.symbol, token.Symbol)
			}
		})
	}
}

func TestGetTokens(t *testing.T) {
	registry := NewTokenRegistry(DefaultTokens)

	t.Run("nil list rejected", func(t *testing.T) {
		if _, err := registry.GetTokens(nil); err == nil {
			t.Error("GetTokens(nil) expected error")
		}
	})

	t.Run("empty list returns empty", func(t *testing.T) {
		tokens, err := registry.GetTokens([]string{})
		if err != nil {
			t.Fatalf("GetTokens([]) unexpected error: %v", err)
		}
		if len(tokens) != 0 {
			t.Errorf("GetTokens([]) = %d tokens, want 0", len(tokens))
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		tokens, err := registry.GetTokens([]string{"WBTC", "ETH", "USDT"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"WBTC", "ETH", "USDT"}
		for i, symbol := range want {
			if tokens[i].Symbol != symbol {
				t.Errorf("tokens[%d].Symbol = %q, want %q", i, tokens[i].Symbol, symbol)
			}
		}
	})

	t.Run("first unknown symbol aborts", func(t *testing.T) {
		tokens, err := registry.GetTokens([]string{"ETH", "NOPE", "WBTC"})
		if err == nil {
			t.Fatalf("expected error, got %d tokens", len(tokens))
		}
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("error = %v, want ErrTokenNotFound", err)
		}
		if tokens != nil {
			t.Errorf("tokens = %+v, want nil on failure", tokens)
		}
	})
}

func TestDerivedViews(t *testing.T) {
	registry := NewTokenRegistry(DefaultTokens)

	for _, symbol := range registry.AllowedMultiplyTokens() {
		token, err := registry.GetToken(symbol)
		if err != nil {
			t.Fatalf("allowed multiply token %q not in registry: %v", symbol, err)
		}
		if token.HasTag(TagLPToken) || token.HasTag(TagStablecoin) {
			t.Errorf("token %q has an excluding tag but is in the multiply view", symbol)
		}
	}

	for _, symbol := range registry.LPTokens() {
		token, err := registry.GetToken(symbol)
		if err != nil {
			t.Fatalf("lp token %q not in registry: %v", symbol, err)
		}
		if !token.HasTag(TagLPToken) {
			t.Errorf("token %q in LP view without lp-token tag", symbol)
		}
	}
}

func TestRootTokenGroups(t *testing.T) {
	registry := NewTokenRegistry(DefaultTokens)

	tests := []struct {
		symbol  string
		wantBTC bool
		wantETH bool
	}{
		{symbol: "WBTC", wantBTC: true, wantETH: false},
		{symbol: "ETH", wantBTC: false, wantETH: true},
		{symbol: "WETH", wantBTC: false, wantETH: true},
		{symbol: "STETH", wantBTC: false, wantETH: true},
		{symbol: "USDT", wantBTC: false, wantETH: false},
		{symbol: "NOPE", wantBTC: false, wantETH: false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := registry.IsBTCToken(tt.symbol); got != tt.wantBTC {
				t.Errorf("IsBTCToken(%q) = %v, want %v", tt.symbol, got, tt.wantBTC)
			}
			if got := registry.IsETHToken(tt.symbol); got != tt.wantETH {
				t.Errorf("IsETHToken(%q) = %v, want %v", tt.symbol, got, tt.wantETH)
			}
		})
	}
}
