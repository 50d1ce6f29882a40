package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// athlete mirrors one entry of the embedded athlete array:
//
//	{"rank":1,"points":32,"fencer":{"name":"BAUDUNOV Khasan","countryCode":"UZB","date":"2001-02-22"}}
type athlete struct {
	Rank   json.RawMessage `json:"rank"`
	Fencer struct {
		Name        string `json:"name"`
		Country     string `json:"country"`
		CountryCode string `json:"countryCode"`
		Date        string `json:"date"`
	} `json:"fencer"`
}

// decodeAthletes projects an embedded athlete array into results. The club is
// always empty; the country code is preferred over the country name.
func decodeAthletes(region Region, v variant.Variant) ([]result.Result, error) {
	var athletes []athlete
	if err := json.Unmarshal([]byte(region.Text()), &athletes); err != nil {
		return nil, fmt.Errorf("%w: decoding %s athletes: %v", ErrNoTableFound, v.Name, err)
	}

	out := make([]result.Result, 0, len(athletes))
	for _, a := range athletes {
		surname, forename := NormalizeName(a.Fencer.Name, v.Names)
		country := a.Fencer.CountryCode
		if country == "" {
			country = a.Fencer.Country
		}
		rank := strings.Trim(string(a.Rank), `"`)
		r := result.New(rank, surname, forename, "", country)
		out = append(out, r.WithBirthYear(result.ParseBirthYear(a.Fencer.Date)))
	}
	return out, nil
}
