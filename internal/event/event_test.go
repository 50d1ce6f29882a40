package event

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	date := time.Date(2019, 2, 9, 0, 0, 0, 0, time.UTC)

	evt, err := New(189, 0, date)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if evt.Year != 2019 {
		t.Errorf("expected year from date, got %d", evt.Year)
	}

	evt, err = New(189, 2018, date)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if evt.Year != 2018 {
		t.Errorf("explicit season year should win, got %d", evt.Year)
	}

	if _, err := New(0, 2019, date); err == nil {
		t.Error("expected error for zero event id")
	}
	if _, err := New(189, 2019, time.Time{}); err == nil {
		t.Error("expected error for missing date")
	}
}

func TestParseCategoryIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "26,0", want: []int{26, 0}},
		{in: " 10, 11 ,0,8 ", want: []int{10, 11, 0, 8}},
		{in: "", wantErr: true},
		{in: "26,x", wantErr: true},
		{in: "26,-1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCategoryIDs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategoryIDs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseCategoryIDs(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestAssign(t *testing.T) {
	cats := []Category{
		{Position: 0, Name: "U13 Boys"},
		{Position: 1, Name: "U13 Girls"},
		{Position: 2, Name: "Team"},
	}

	got, err := Assign(cats, []int{3, 0})
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	want := []Category{{Position: 0, Name: "U13 Boys", ID: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assign mismatch (-want +got):\n%s", diff)
	}
	if cats[0].ID != 0 {
		t.Error("Assign must not modify its input")
	}

	if _, err := Assign(cats, []int{1, 2, 3, 4}); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch, got %v", err)
	}
}

func TestFromCSV(t *testing.T) {
	raw := "Rank,Surname,Forename,Club,Country\n1,SMITH,John,Truro,GBR\n@@@@\n1,JONES,Anna,Truro,GBR\n2,BROWN,Tom,,GBR\n"

	got, err := FromCSV(raw, "results.csv", []int{0, 4})
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 selected category, got %d", len(got))
	}
	if got[0].Category.ID != 4 || got[0].Category.Position != 1 {
		t.Errorf("unexpected category %+v", got[0].Category)
	}
	if len(got[0].Results) != 2 || got[0].Results[1].Surname != "BROWN" {
		t.Errorf("unexpected results %v", got[0].Results)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2019, 2, 9, 0, 0, 0, 0, time.UTC)

	tests := []string{
		"2019-02-09",
		"09/02/2019",
		"9/2/2019",
		"09.02.2019",
		"9 Feb 2019",
		"9 February 2019",
		"Feb 9, 2019",
		" February 9 2019 ",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseDate(in)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", in, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, expected %v", in, got, want)
			}
		})
	}

	for _, in := range []string{"", "next saturday", "2019-13-01"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}
