package variant

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "exact", input: "engarde", want: "engarde"},
		{name: "mixed case", input: " FencingTime ", want: "fencingtime"},
		{name: "json source", input: "fie", want: "fie"},
		{name: "unknown", input: "askfred", wantErr: true},
		{name: "schedule helper", input: "fencingtime-schedule", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Lookup(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVariant) {
					t.Fatalf("Lookup(%q) error = %v, want ErrUnknownVariant", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.input, err)
			}
			if v.Name != tt.want {
				t.Errorf("Lookup(%q).Name = %q, want %q", tt.input, v.Name, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := []string{"csv", "engarde", "fencingtime", "fie", "lpjs", "ophardt"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDictionary_Matches(t *testing.T) {
	if !Standard.Matches(Rank, "#") {
		t.Error("Standard should accept # as a rank label")
	}
	if Standard.Matches(Rank, "rank") {
		t.Error("label matching must be case-sensitive")
	}
	if !Ophardt.Dictionary.Matches(Rank, EmptyCell) {
		t.Error("Ophardt should accept the empty-cell placeholder as its rank label")
	}
	if Engarde.Dictionary.Has(FullName) {
		t.Error("Engarde reads surname and forename from separate columns")
	}
	if !Engarde.Dictionary.Has(Forename) {
		t.Error("Engarde should declare a forename column")
	}
}

func TestFencingtime_MarkerOrder(t *testing.T) {
	if got := Fencingtime.Markers[0]; got != `<table id="resultList"` {
		t.Errorf("first marker = %q, want the live results table", got)
	}
	if len(Fencingtime.Markers) != 4 {
		t.Errorf("len(Markers) = %d, want 4", len(Fencingtime.Markers))
	}
}
