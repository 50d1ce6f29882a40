package extract

import (
	"testing"

	"github.com/pfrederiksen/fencing-results/internal/variant"
)

func TestResolveHeader(t *testing.T) {
	idx := ResolveHeader([]string{"Rank", "Name", "Club", "Country"}, variant.Standard)

	want := map[variant.ColumnRole]int{
		variant.Rank:     0,
		variant.FullName: 1,
		variant.Club:     2,
		variant.Country:  3,
	}
	for role, pos := range want {
		if got := idx.Of(role); got != pos {
			t.Errorf("Of(%s) = %d, expected %d", role, got, pos)
		}
	}
	if len(idx.Unresolved()) != 0 {
		t.Errorf("expected no unresolved roles, got %v", idx.Unresolved())
	}
}

func TestResolveHeaderMissingColumns(t *testing.T) {
	idx := ResolveHeader([]string{"Rank", "Name"}, variant.Standard)

	if idx.Of(variant.Club) != -1 {
		t.Errorf("expected Club to resolve to -1, got %d", idx.Of(variant.Club))
	}
	if idx.Of(variant.Country) != -1 {
		t.Errorf("expected Country to resolve to -1, got %d", idx.Of(variant.Country))
	}
	unresolved := idx.Unresolved()
	if len(unresolved) != 2 || unresolved[0] != variant.Club || unresolved[1] != variant.Country {
		t.Errorf("expected [club country] unresolved, got %v", unresolved)
	}
}

func TestResolveHeaderFirstMatchWins(t *testing.T) {
	idx := ResolveHeader([]string{"#", "Name", "Club", "Club(s)", "Rank"}, variant.Standard)

	if got := idx.Of(variant.Rank); got != 0 {
		t.Errorf("expected first rank label to win, got %d", got)
	}
	if got := idx.Of(variant.Club); got != 2 {
		t.Errorf("expected first club label to win, got %d", got)
	}
}

func TestResolveHeaderCaseSensitive(t *testing.T) {
	idx := ResolveHeader([]string{"RANK", "name"}, variant.Standard)

	if idx.Of(variant.Rank) != -1 || idx.Of(variant.FullName) != -1 {
		t.Error("labels should match case-sensitively")
	}
}

func TestColumnIndexUndeclaredRole(t *testing.T) {
	idx := ResolveHeader([]string{"Rank", "YOB"}, variant.Standard)

	if got := idx.Of(variant.YearOfBirth); got != -1 {
		t.Errorf("undeclared role should report -1, got %d", got)
	}
}
