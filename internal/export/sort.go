package export

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByRank    SortOrder = "rank"
	SortByName    SortOrder = "name"
	SortByClub    SortOrder = "club"
	SortByCountry SortOrder = "country"
)

// ParseSortOrder reads a sort order; empty means rank.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortByRank, true
	case SortByRank, SortByName, SortByClub, SortByCountry:
		return o, true
	}
	return "", false
}

// Sort orders results in place. Ties fall back to rank, then name, so the
// output is deterministic. Tied ranks keep their source order.
func Sort(results []result.Result, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(results, func(i, j int) bool {
			return compareByName(results[i], results[j])
		})
	case SortByClub:
		sort.SliceStable(results, func(i, j int) bool {
			if ci, cj := strings.ToLower(results[i].Club), strings.ToLower(results[j].Club); ci != cj {
				return ci < cj
			}
			return compareByRank(results[i], results[j])
		})
	case SortByCountry:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Country != results[j].Country {
				return results[i].Country < results[j].Country
			}
			return compareByRank(results[i], results[j])
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rank < results[j].Rank
		})
	}
}

func compareByRank(i, j result.Result) bool {
	if i.Rank != j.Rank {
		return i.Rank < j.Rank
	}
	return compareByName(i, j)
}

func compareByName(i, j result.Result) bool {
	si, sj := strings.ToLower(i.Surname), strings.ToLower(j.Surname)
	if si != sj {
		return si < sj
	}
	return strings.ToLower(i.Forename) < strings.ToLower(j.Forename)
}
