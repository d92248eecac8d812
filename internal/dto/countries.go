package dto

type CountryItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Prefix      string `json:"prefix"`
	PostalLabel string `json:"postal_label"`
	Flag        string `json:"flag"`
}

type CountriesResponse struct {
	Countries []CountryItem `json:"countries"`
}
