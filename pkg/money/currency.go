package money

import "strings"

// minor-unit exponents that differ from the usual 2
var exponents = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"CLP": 0,
	"ISK": 0,
	"BHD": 3,
	"JOD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"THB": "฿",
	"BRL": "R$",
}

// Exponent returns the number of minor-unit digits for a currency.
func Exponent(currency string) int32 {
	if exp, ok := exponents[normalizeCurrency(currency)]; ok {
		return exp
	}
	return 2
}

func symbol(currency string) string {
	if s, ok := symbols[currency]; ok {
		return s
	}
	return currency + " "
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}
