package handlers

import (
	"net/http"

	"BOOKING_BACK-END/internal/countries"
	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/utils"
)

// Countries returns the catalog offered on the profile form
// @Summary List countries
// @Tags profile
// @Produce json
// @Success 200 {object} dto.CountriesResponse
// @Router /api/countries [get]
func Countries(w http.ResponseWriter, r *http.Request) {
	all := countries.All()
	items := make([]dto.CountryItem, 0, len(all))
	for _, c := range all {
		items = append(items, dto.CountryItem{
			Code:        c.Code,
			Name:        c.Name,
			Prefix:      c.Prefix,
			PostalLabel: c.PostalLabel,
			Flag:        c.Flag,
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.CountriesResponse{Countries: items})
}
