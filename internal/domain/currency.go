package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is one entry of the static reference table. Rate is the value of
// one US dollar expressed in this currency; the table is shipped data, not
// a live lookup.
type Currency struct {
	Code     string
	Name     string
	Symbol   string
	Rate     decimal.Decimal
	Timezone string
}

// SupportedCurrencies is the built-in reference table, ordered by region.
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "Dólar Estadounidense", Symbol: "$", Rate: dec("1"), Timezone: "America/New_York"},
	{Code: "ARS", Name: "Peso Argentino", Symbol: "$", Rate: dec("850"), Timezone: "America/Argentina/Buenos_Aires"},
	{Code: "BOB", Name: "Boliviano", Symbol: "Bs", Rate: dec("6.9"), Timezone: "America/La_Paz"},
	{Code: "BRL", Name: "Real Brasileño", Symbol: "R$", Rate: dec("4.95"), Timezone: "America/Sao_Paulo"},
	{Code: "CAD", Name: "Dólar Canadiense", Symbol: "$", Rate: dec("1.35"), Timezone: "America/Toronto"},
	{Code: "CLP", Name: "Peso Chileno", Symbol: "$", Rate: dec("960"), Timezone: "America/Santiago"},
	{Code: "COP", Name: "Peso Colombiano", Symbol: "$", Rate: dec("3900"), Timezone: "America/Bogota"},
	{Code: "CRC", Name: "Colón Costarricense", Symbol: "₡", Rate: dec("515"), Timezone: "America/Costa_Rica"},
	{Code: "DOP", Name: "Peso Dominicano", Symbol: "RD$", Rate: dec("58.5"), Timezone: "America/Santo_Domingo"},
	{Code: "GTQ", Name: "Quetzal", Symbol: "Q", Rate: dec("7.8"), Timezone: "America/Guatemala"},
	{Code: "HNL", Name: "Lempira", Symbol: "L", Rate: dec("24.7"), Timezone: "America/Tegucigalpa"},
	{Code: "MXN", Name: "Peso Mexicano", Symbol: "$", Rate: dec("17.50"), Timezone: "America/Mexico_City"},
	{Code: "NIO", Name: "Córdoba", Symbol: "C$", Rate: dec("36.6"), Timezone: "America/Managua"},
	{Code: "PEN", Name: "Sol Peruano", Symbol: "S/", Rate: dec("3.75"), Timezone: "America/Lima"},
	{Code: "PYG", Name: "Guaraní", Symbol: "₲", Rate: dec("7250"), Timezone: "America/Asuncion"},
	{Code: "UYU", Name: "Peso Uruguayo", Symbol: "$", Rate: dec("39.0"), Timezone: "America/Montevideo"},
	{Code: "VES", Name: "Bolívar (Venezuela)", Symbol: "Bs", Rate: dec("36.0"), Timezone: "America/Caracas"},
	{Code: "EUR", Name: "Euro", Symbol: "€", Rate: dec("0.92"), Timezone: "Europe/Berlin"},
	{Code: "GBP", Name: "Libra Esterlina", Symbol: "£", Rate: dec("0.79"), Timezone: "Europe/London"},
	{Code: "CHF", Name: "Franco Suizo", Symbol: "Fr", Rate: dec("0.88"), Timezone: "Europe/Zurich"},
	{Code: "SEK", Name: "Corona Sueca", Symbol: "kr", Rate: dec("10.3"), Timezone: "Europe/Stockholm"},
	{Code: "NOK", Name: "Corona Noruega", Symbol: "kr", Rate: dec("10.5"), Timezone: "Europe/Oslo"},
	{Code: "DKK", Name: "Corona Danesa", Symbol: "kr", Rate: dec("6.9"), Timezone: "Europe/Copenhagen"},
	{Code: "CZK", Name: "Corona Checa", Symbol: "Kč", Rate: dec("23.5"), Timezone: "Europe/Prague"},
	{Code: "PLN", Name: "Zloty Polaco", Symbol: "zł", Rate: dec("4.0"), Timezone: "Europe/Warsaw"},
	{Code: "RUB", Name: "Rublo Ruso", Symbol: "₽", Rate: dec("92"), Timezone: "Europe/Moscow"},
	{Code: "UAH", Name: "Grivna Ucraniana", Symbol: "₴", Rate: dec("38.0"), Timezone: "Europe/Kiev"},
	{Code: "TRY", Name: "Lira Turca", Symbol: "₺", Rate: dec("31"), Timezone: "Europe/Istanbul"},
	{Code: "JPY", Name: "Yen Japonés", Symbol: "¥", Rate: dec("150"), Timezone: "Asia/Tokyo"},
	{Code: "CNY", Name: "Yuan Chino", Symbol: "¥", Rate: dec("7.2"), Timezone: "Asia/Shanghai"},
	{Code: "KRW", Name: "Won Surcoreano", Symbol: "₩", Rate: dec("1330"), Timezone: "Asia/Seoul"},
	{Code: "INR", Name: "Rupia India", Symbol: "₹", Rate: dec("83"), Timezone: "Asia/Kolkata"},
	{Code: "SGD", Name: "Dólar Singapur", Symbol: "S$", Rate: dec("1.34"), Timezone: "Asia/Singapore"},
	{Code: "HKD", Name: "Dólar de Hong Kong", Symbol: "HK$", Rate: dec("7.82"), Timezone: "Asia/Hong_Kong"},
	{Code: "AUD", Name: "Dólar Australiano", Symbol: "$", Rate: dec("1.52"), Timezone: "Australia/Sydney"},
	{Code: "NZD", Name: "Dólar Neozelandés", Symbol: "$", Rate: dec("1.60"), Timezone: "Pacific/Auckland"},
	{Code: "AED", Name: "Dirham EAU", Symbol: "dh", Rate: dec("3.67"), Timezone: "Asia/Dubai"},
	{Code: "SAR", Name: "Riyal Saudí", Symbol: "﷼", Rate: dec("3.75"), Timezone: "Asia/Riyadh"},
	{Code: "ILS", Name: "Shekel Israelí", Symbol: "₪", Rate: dec("3.6"), Timezone: "Asia/Jerusalem"},
	{Code: "ZAR", Name: "Rand Sudafricano", Symbol: "R", Rate: dec("19"), Timezone: "Africa/Johannesburg"},
	{Code: "EGP", Name: "Libra Egipcia", Symbol: "E£", Rate: dec("30.9"), Timezone: "Africa/Cairo"},
	{Code: "NGN", Name: "Naira Nigeriana", Symbol: "₦", Rate: dec("1500"), Timezone: "Africa/Lagos"},
	{Code: "KES", Name: "Chelín Keniano", Symbol: "KSh", Rate: dec("145"), Timezone: "Africa/Nairobi"},
	{Code: "MAD", Name: "Dirham Marroquí", Symbol: "dh", Rate: dec("10.0"), Timezone: "Africa/Casablanca"},
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// FindCurrency looks a currency up by code.
func FindCurrency(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// ConvertAmount converts between two currencies of the reference table
// through their USD rates.
func ConvertAmount(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	src, ok := FindCurrency(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency %q", from)
	}
	dst, ok := FindCurrency(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency %q", to)
	}
	return amount.Div(src.Rate).Mul(dst.Rate), nil
}
