// Package currency converts amounts between currencies using a rate table.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/store"
)

const (
	PluginName = "CurrencyConverter"
	Collection = "currency/currencies"
)

var (
	// ErrUnknownCurrency is returned for a code missing from the rate table.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrInvalidAmount is returned when the amount is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Currency is one row of the rate table.
type Currency struct {
	Code        string
	Name        string
	USDPerUnit  float64
	UnitsPerUSD float64
}

// Converter looks up rates in the currency collection.
type Converter struct {
	store store.CollectionStore
}

// NewConverter creates a converter backed by s.
func NewConverter(s store.CollectionStore) *Converter {
	return &Converter{store: s}
}

// Currencies loads the rate table keyed by upper-case code.
func (c *Converter) Currencies(ctx context.Context) (map[string]Currency, error) {
	rows, err := c.store.Load(ctx, Collection)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Currency, len(rows))
	for _, r := range rows {
		code := strings.ToUpper(r.String("code"))
		usdPerUnit, err := number(r, "usd_per_unit")
		if err != nil {
			return nil, fmt.Errorf("%w: currency %s: %v", store.ErrMalformed, code, err)
		}
		unitsPerUSD, err := number(r, "units_per_usd")
		if err != nil {
			return nil, fmt.Errorf("%w: currency %s: %v", store.ErrMalformed, code, err)
		}
		out[code] = Currency{
			Code:        code,
			Name:        r.String("name"),
			USDPerUnit:  usdPerUnit,
			UnitsPerUSD: unitsPerUSD,
		}
	}
	return out, nil
}

// ConvertAmount converts amount from base to target through US dollars.
func (c *Converter) ConvertAmount(ctx context.Context, targetCode, amount, baseCode string) (string, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	currencies, err := c.Currencies(ctx)
	if err != nil {
		return "", err
	}
	target, ok := currencies[strings.ToUpper(strings.TrimSpace(targetCode))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, targetCode)
	}
	base, ok := currencies[strings.ToUpper(strings.TrimSpace(baseCode))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, baseCode)
	}

	result := value * base.USDPerUnit * target.UnitsPerUSD
	return fmt.Sprintf("$%s %s is approximately %.2f %s (%s)",
		strings.TrimSpace(amount), base.Code, result, target.Code, target.Name), nil
}

func number(r store.Record, field string) (float64, error) {
	switch v := r[field].(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, fmt.Errorf("missing %s", field)
	default:
		return 0, fmt.Errorf("%s has unexpected type %T", field, v)
	}
}

// New builds the plugin over s.
func New(s store.CollectionStore) *plugin.Plugin {
	c := NewConverter(s)
	return plugin.New(PluginName, "Currency conversion",
		plugin.NewFunction("ConvertAmount", "Convert an amount from one currency to another",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				return c.ConvertAmount(ctx, args.String("targetCurrencyCode"), args.String("amount"), args.String("baseCurrencyCode"))
			},
			plugin.Parameter{Name: "targetCurrencyCode", Description: "The target currency code", Required: true},
			plugin.Parameter{Name: "amount", Description: "The amount to convert", Required: true},
			plugin.Parameter{Name: "baseCurrencyCode", Description: "The starting currency code", Required: true},
		),
	)
}
