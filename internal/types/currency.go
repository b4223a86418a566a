package types

import "strings"

// currencyPrecision holds display precision for currencies that deviate
// from the 2-decimal default.
var currencyPrecision = map[string]int{
	"bhd": 3,
	"jod": 3,
	"kwd": 3,
	"omr": 3,
	"tnd": 3,
	"jpy": 0,
	"krw": 0,
	"vnd": 0,
	"clp": 0,
}

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"inr": "₹",
	"jpy": "¥",
	"aud": "A$",
	"cad": "C$",
	"sar": "SAR",
	"aed": "AED",
}

// GetCurrencyPrecision returns the display precision for a currency
// code. Unknown currencies fall back to 2 decimal places. Per-unit
// overage rates keep full decimal precision and are never rounded with
// this value.
func GetCurrencyPrecision(currency string) int {
	if p, ok := currencyPrecision[strings.ToLower(currency)]; ok {
		return p
	}
	return 2
}

// GetCurrencySymbol returns the display symbol for a currency code,
// falling back to the uppercase code itself.
func GetCurrencySymbol(currency string) string {
	if s, ok := currencySymbols[strings.ToLower(currency)]; ok {
		return s
	}
	return strings.ToUpper(currency)
}
