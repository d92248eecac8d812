// Package countries holds the country catalog offered on the profile form.
package countries

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

var ErrUnknownCountry = errors.New("unknown country code")

type Country struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Prefix      string `json:"prefix"`
	PostalLabel string `json:"postal_label"`
	Flag        string `json:"flag"`
}

var catalog = []Country{
	{Code: "BR", Name: "Brazil", Prefix: "+55", PostalLabel: "CEP", Flag: "🇧🇷"},
	{Code: "US", Name: "United States", Prefix: "+1", PostalLabel: "ZIP Code", Flag: "🇺🇸"},
	{Code: "GB", Name: "United Kingdom", Prefix: "+44", PostalLabel: "Postcode", Flag: "🇬🇧"},
	{Code: "CA", Name: "Canada", Prefix: "+1", PostalLabel: "Postal Code", Flag: "🇨🇦"},
	{Code: "PT", Name: "Portugal", Prefix: "+351", PostalLabel: "Código Postal", Flag: "🇵🇹"},
	{Code: "ES", Name: "Spain", Prefix: "+34", PostalLabel: "Código Postal", Flag: "🇪🇸"},
	{Code: "FR", Name: "France", Prefix: "+33", PostalLabel: "Code Postal", Flag: "🇫🇷"},
	{Code: "DE", Name: "Germany", Prefix: "+49", PostalLabel: "Postleitzahl", Flag: "🇩🇪"},
}

// defaultPostalLabel is shown for countries outside the catalog.
const defaultPostalLabel = "Postal Code"

// All returns a copy of the catalog in display order.
func All() []Country {
	out := make([]Country, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by ISO code, case-insensitively.
func Lookup(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Normalize validates code as an ISO 3166-1 alpha-2 country and returns it upper-cased.
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return "", ErrUnknownCountry
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", ErrUnknownCountry
	}
	return region.String(), nil
}

// PostalLabel returns the postal code label for code.
func PostalLabel(code string) string {
	if c, ok := Lookup(code); ok {
		return c.PostalLabel
	}
	return defaultPostalLabel
}
