package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrTokenNotFound is returned when a symbol is absent from the registry.
// An unknown symbol is a configuration inconsistency, not a lookup miss.
var ErrTokenNotFound = errors.New("token not found")

// TokenRegistry holds the token catalog indexed by symbol, plus derived
// views computed once at construction. It is immutable after New.
type TokenRegistry struct {
	bySymbol map[string]Token
	all      []Token

	allowedMultiplyTokens []string
	lpTokens              []string
	btcTokens             []string
	ethTokens             []string
}

// NewTokenRegistry builds a registry from a static token table. Derived
// views are recomputed here and nowhere else.
func NewTokenRegistry(tokens []Token) *TokenRegistry {
	r := &TokenRegistry{
		bySymbol: make(map[string]Token, len(tokens)),
		all:      make([]Token, 0, len(tokens)),
	}
	for _, token := range tokens {
		r.bySymbol[token.Symbol] = token
		r.all = append(r.all, token)
	}

	for _, token := range r.all {
		if !token.HasTag(TagLPToken) && !token.HasTag(TagStablecoin) {
			r.allowedMultiplyTokens = append(r.allowedMultiplyTokens, token.Symbol)
		}
		if token.HasTag(TagLPToken) {
			r.lpTokens = append(r.lpTokens, token.Symbol)
		}
		if token.RootToken == "BTC" || token.Symbol == "BTC" {
			r.btcTokens = append(r.btcTokens, token.Symbol)
		}
		if token.RootToken == "ETH" || token.Symbol == "ETH" {
			r.ethTokens = append(r.ethTokens, token.Symbol)
		}
	}
	return r
}

// tokensFile mirrors the on-disk tokens.json structure.
type tokensFile struct {
	Tokens []Token `json:"tokens"`
}

// LoadTokenRegistry builds a registry from a JSON catalog file.
func LoadTokenRegistry(path string) (*TokenRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token catalog: %w", err)
	}

	var file tokensFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse token catalog: %w", err)
	}

	return NewTokenRegistry(file.Tokens), nil
}

// GetToken returns the token for a symbol. Unknown symbols fail with
// ErrTokenNotFound rather than returning a zero value.
func (r *TokenRegistry) GetToken(symbol string) (Token, error) {
	token, ok := r.bySymbol[symbol]
	if !ok {
		return Token{}, fmt.Errorf("no meta information for token %q: %w", symbol, ErrTokenNotFound)
	}
	return token, nil
}

// GetTokens resolves a list of symbols. A nil list is rejected before any
// lookup, and the first unknown symbol aborts the whole call.
func (r *TokenRegistry) GetTokens(symbols []string) ([]Token, error) {
	if symbols == nil {
		return nil, errors.New("symbols must be a non-nil list")
	}

	tokens := make([]Token, 0, len(symbols))
	for _, symbol := range symbols {
		token, err := r.GetToken(symbol)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// All returns every registered token in table order.
func (r *TokenRegistry) All() []Token {
	return r.all
}

// Count returns the number of registered tokens.
func (r *TokenRegistry) Count() int {
	return len(r.all)
}

// AllowedMultiplyTokens lists symbols tagged neither stablecoin nor lp-token.
func (r *TokenRegistry) AllowedMultiplyTokens() []string {
	return r.allowedMultiplyTokens
}

// LPTokens lists symbols tagged lp-token.
func (r *TokenRegistry) LPTokens() []string {
	return r.lpTokens
}

// BTCTokens lists symbols whose root token is BTC, or BTC itself.
func (r *TokenRegistry) BTCTokens() []string {
	return r.btcTokens
}

// ETHTokens lists symbols whose root token is ETH, or ETH itself.
func (r *TokenRegistry) ETHTokens() []string {
	return r.ethTokens
}

// IsBTCToken reports membership in the BTC root-token group.
func (r *TokenRegistry) IsBTCToken(symbol string) bool {
	return contains(r.btcTokens, symbol)
}

// IsETHToken reports membership in the ETH root-token group.
func (r *TokenRegistry) IsETHToken(symbol string) bool {
	return contains(r.ethTokens, symbol)
}

func contains(list []string, value string) bool {
	for _, existing := range list {
		if existing == value {
			return true
		}
	}
	return false
}
