package extract

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestExtractEndToEnd(t *testing.T) {
	page := `<table>
<tr><th>Rank</th><th>Name</th><th>Club</th><th>Country</th></tr>
<tr><td>1</td><td>SMITH John</td><td>Fencing Club</td><td>GBR</td></tr>
<tr><td>DNS</td><td>JONES Anna</td><td>Truro</td><td>GBR</td></tr>
</table>`

	got, err := Extract(page, variant.Ophardt)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []result.Result{
		{Rank: 1, Surname: "SMITH", Forename: "John", Club: "Fencing Club", Country: "GBR", Points: 32},
		{Rank: result.SentinelRank, Surname: "JONES", Forename: "Anna", Club: "Truro", Country: "GBR", Points: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFixtures(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		variant variant.Variant
		want    []result.Result
	}{
		{
			name:    "engarde current",
			fixture: "engarde_clasfinal.htm",
			variant: variant.Engarde,
			want: []result.Result{
				{Rank: 1, Surname: "SMITH", Forename: "John", Club: "Fencing Club", Country: "GBR", Points: 32},
				{Rank: 2, Surname: "DUPONT", Forename: "Jean-Luc", Country: "FRA", Points: 26},
				{Rank: 3, Surname: "O'NEIL", Forename: "Sean", Club: "Salle Dublin", Country: "IRL", Points: 20},
				{Rank: 3, Surname: "MÜLLER", Forename: "Jonas", Club: "FC Tauberbischofsheim", Country: "GER", Points: 20},
				{Rank: result.SentinelRank, Surname: "BROWN", Forename: "Tom", Club: "Leon Paul", Country: "GBR", Points: 1},
			},
		},
		{
			name:    "engarde legacy",
			fixture: "engarde_legacy.htm",
			variant: variant.Engarde,
			want: []result.Result{
				{Rank: 1, Surname: "SMITH", Forename: "John", Club: "Fencing Club", Country: "GBR", Points: 32},
				{Rank: 2, Surname: "JONES", Forename: "Anna", Club: "Truro", Country: "GBR", Points: 26},
			},
		},
		{
			name:    "fencingtime",
			fixture: "fencingtime_results.htm",
			variant: variant.Fencingtime,
			want: []result.Result{
				{Rank: 1, Surname: "SMITH", Forename: "Jane", Club: "Club A / Club B", Country: "USA", Points: 32},
				{Rank: 2, Surname: "GARCIA LOPEZ", Forename: "Maria", Club: "Salle Santelli", Country: "USA", Points: 26},
				{Rank: 3, Surname: "Lee", Forename: "Min-Ji", Country: "KOR", Points: 20},
				{Rank: result.SentinelRank, Surname: "WRIGHT", Forename: "Emma", Club: "Fencers Club", Country: "USA", Points: 1},
			},
		},
		{
			name:    "ophardt",
			fixture: "ophardt_results.htm",
			variant: variant.Ophardt,
			want: []result.Result{
				{Rank: 1, Surname: "SZILAGYI", Forename: "Aron", Club: "Vasas", Country: "HUN", Points: 32, BirthYear: 1990},
				{Rank: 2, Surname: "JONES", Forename: "Anna", Country: "FRA", Points: 26},
				{Rank: 3, Surname: "KIM", Forename: "Jung-hwan", Club: "Seoul", Country: "KOR", Points: 20, BirthYear: 1983},
			},
		},
		{
			name:    "lpjs",
			fixture: "lpjs_results.htm",
			variant: variant.LPJS,
			want: []result.Result{
				{Rank: 1, Surname: "Smith", Forename: "John", Club: "Salle Paul", Points: 32},
				{Rank: 2, Surname: "Jones", Forename: "Mary Ann", Club: "Truro", Points: 26},
			},
		},
		{
			name:    "fie",
			fixture: "fie_competition.htm",
			variant: variant.FIE,
			want: []result.Result{
				{Rank: 1, Surname: "BAUDUNOV", Forename: "Khasan", Country: "UZB", Points: 32, BirthYear: 2001},
				{Rank: 3, Surname: "LE PECHOUX", Forename: "Erwann", Country: "FRA", Points: 20, BirthYear: 1982},
				{Rank: result.SentinelRank, Surname: "Doe", Forename: "Jane", Country: "CANADA", Points: 1},
			},
		},
		{
			name:    "csv",
			fixture: "legacy_results.csv",
			variant: variant.CSV,
			want: []result.Result{
				{Rank: 1, Surname: "SMITH", Forename: "John", Club: "Fencing Club", Country: "GBR", Points: 32},
				{Rank: 2, Surname: "JONES", Forename: "Anna", Country: "GBR", Points: 26},
				{Rank: result.SentinelRank, Surname: "BROWN", Forename: "Tom", Club: "Leon Paul", Country: "GBR", Points: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(loadFixture(t, tt.fixture), tt.variant)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractWithReport(t *testing.T) {
	_, rep, err := ExtractWithReport(loadFixture(t, "engarde_clasfinal.htm"), variant.Engarde)
	if err != nil {
		t.Fatalf("ExtractWithReport failed: %v", err)
	}
	if rep.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", rep.Rows)
	}
	if rep.Skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", rep.Skipped)
	}
	if rep.Legacy {
		t.Error("current engarde page should not be reported as legacy")
	}
	if len(rep.Unresolved) != 0 {
		t.Errorf("expected every column resolved, got %v", rep.Unresolved)
	}

	_, rep, err = ExtractWithReport(loadFixture(t, "lpjs_results.htm"), variant.LPJS)
	if err != nil {
		t.Fatalf("ExtractWithReport failed: %v", err)
	}
	if diff := cmp.Diff([]variant.ColumnRole{variant.Country}, rep.Unresolved); diff != "" {
		t.Errorf("unresolved mismatch (-want +got):\n%s", diff)
	}

	_, rep, err = ExtractWithReport(loadFixture(t, "engarde_legacy.htm"), variant.Engarde)
	if err != nil {
		t.Fatalf("ExtractWithReport failed: %v", err)
	}
	if !rep.Legacy {
		t.Error("expected legacy dialect to be detected")
	}
}

func TestExtractIdempotent(t *testing.T) {
	page := loadFixture(t, "fencingtime_results.htm")

	first, err := Extract(page, variant.Fencingtime)
	if err != nil {
		t.Fatalf("first Extract failed: %v", err)
	}
	second, err := Extract(page, variant.Fencingtime)
	if err != nil {
		t.Fatalf("second Extract failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Extract differs (-first +second):\n%s", diff)
	}
}

func TestExtractNoTableFound(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		variant variant.Variant
	}{
		{name: "no table", page: "<html><body><p>Results coming soon</p></body></html>", variant: variant.Engarde},
		{name: "unterminated table", page: "<table><tr><td>Rank</td></tr>", variant: variant.Ophardt},
		{name: "wrong fencingtime generation", page: `<table class="other"><tr><td>x</td></tr></table>`, variant: variant.Fencingtime},
		{name: "no rows", page: "<table><caption>empty</caption></table>", variant: variant.Ophardt},
		{name: "no athletes", page: "<script>window._tabs = [];</script>", variant: variant.FIE},
		{name: "malformed athletes", page: `<script>window._athletes = [{"rank":1,;</script>`, variant: variant.FIE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.page, tt.variant)
			if !errors.Is(err, ErrNoTableFound) {
				t.Fatalf("expected ErrNoTableFound, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no results on failure, got %v", got)
			}
		})
	}
}

func TestExtractFrameset(t *testing.T) {
	_, err := Extract(loadFixture(t, "engarde_frameset.htm"), variant.Engarde)

	var refetch *RefetchError
	if !errors.As(err, &refetch) {
		t.Fatalf("expected *RefetchError, got %v", err)
	}
	if refetch.URL != "clasfinal.htm" {
		t.Errorf("expected refetch of clasfinal.htm, got %q", refetch.URL)
	}
}

func TestExtractFramesetDoctype(t *testing.T) {
	page := `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Frameset//EN">
<html><body><table class="liste">
<tr>
<th>Rank</th>
<th>Name</th>
<th>First name</th>
<th>Club</th>
<th>Country</th>
</tr>
<tr>
<td>1</td>
<td>SMITH</td>
<td>John</td>
<td>Fencing Club</td>
<td>GBR</td>
</tr>
</table></body></html>`

	got, err := Extract(page, variant.Engarde)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []result.Result{
		{Rank: 1, Surname: "SMITH", Forename: "John", Club: "Fencing Club", Country: "GBR", Points: 32},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractUnresolvedRank(t *testing.T) {
	page := `<table>
<tr><th>Pos</th><th>Name</th></tr>
<tr><td>1</td><td>SMITH John</td></tr>
</table>`

	got, err := Extract(page, variant.Ophardt)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []result.Result{
		{Rank: result.SentinelRank, Surname: "SMITH", Forename: "John", Points: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSurnameColumnOnly(t *testing.T) {
	page := `<table>
<tr>
<th>Rank</th>
<th>Name</th>
<th>Country</th>
</tr>
<tr>
<td>4</td>
<td>PETIT Claire</td>
<td>FRA</td>
</tr>
</table>`

	got, err := Extract(page, variant.Engarde)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []result.Result{
		{Rank: 4, Surname: "PETIT", Forename: "Claire", Country: "FRA", Points: 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractCSVBlocks(t *testing.T) {
	blocks, err := ExtractCSV(loadFixture(t, "legacy_results.csv"))
	if err != nil {
		t.Fatalf("ExtractCSV failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 category blocks, got %d", len(blocks))
	}
	if len(blocks[0]) != 2 || len(blocks[1]) != 1 {
		t.Errorf("expected block sizes 2 and 1, got %d and %d", len(blocks[0]), len(blocks[1]))
	}
}
