package gateway

import (
	"fmt"
	"sort"
)

// Bank is one payout destination supported by the banking gateway.
type Bank struct {
	Name       string `json:"name"`
	BankCode   string `json:"bankCode"`
	RoutingKey string `json:"routingKey"`
	CategoryID string `json:"categoryId"`
}

// Registry holds the supported bank list, injected at wiring time instead of
// living in a package-level constant.
type Registry struct {
	byCode map[string]Bank
}

// NewRegistry builds a Registry from the configured bank list.
func NewRegistry(banks []Bank) *Registry {
	byCode := make(map[string]Bank, len(banks))
	for _, b := range banks {
		byCode[b.BankCode] = b
	}
	return &Registry{byCode: byCode}
}

// Lookup returns the bank with the given code.
func (r *Registry) Lookup(code string) (Bank, error) {
	bank, ok := r.byCode[code]
	if !ok {
		return Bank{}, fmt.Errorf("unknown bank code %q", code)
	}
	return bank, nil
}

// List returns every registered bank, sorted by name.
func (r *Registry) List() []Bank {
	banks := make([]Bank, 0, len(r.byCode))
	for _, b := range r.byCode {
		banks = append(banks, b)
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks
}
