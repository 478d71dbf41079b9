package model

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03", want: "2024-03"},
		{in: "1999-12", want: "1999-12"},
		{in: "2024-13", wantErr: true},
		{in: "2024-3", wantErr: true},
		{in: "2024", wantErr: true},
		{in: "march", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMonth(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMonth(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMonth(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMonth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: "2024-01", To: "2024-06"}

	for _, m := range []string{"2024-01", "2024-03", "2024-06"} {
		if !r.Contains(m) {
			t.Errorf("Contains(%s) = false, want true", m)
		}
	}
	for _, m := range []string{"2023-12", "2024-07"} {
		if r.Contains(m) {
			t.Errorf("Contains(%s) = true, want false", m)
		}
	}

	open := Range{}
	if !open.Contains("1970-01") || !open.Contains("2999-12") {
		t.Error("zero range must contain every month")
	}
}

func TestRangeValidate(t *testing.T) {
	if err := (Range{From: "2024-01", To: "2024-06"}).Validate(); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := (Range{}).Validate(); err != nil {
		t.Errorf("zero range rejected: %v", err)
	}
	if err := (Range{From: "2024-06", To: "2024-01"}).Validate(); err == nil {
		t.Error("inverted range accepted")
	}
	if err := (Range{From: "junk"}).Validate(); err == nil {
		t.Error("malformed bound accepted")
	}
}

func TestLastMonths(t *testing.T) {
	now := time.Date(2024, time.March, 31, 10, 0, 0, 0, time.UTC)

	got := LastMonths(3, now)
	want := Range{From: "2024-01", To: "2024-03"}
	if got != want {
		t.Errorf("LastMonths(3) = %+v, want %+v", got, want)
	}

	// Crossing a year boundary.
	got = LastMonths(4, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	want = Range{From: "2023-11", To: "2024-02"}
	if got != want {
		t.Errorf("LastMonths(4) = %+v, want %+v", got, want)
	}

	if got := LastMonths(0, now); !got.IsZero() {
		t.Errorf("LastMonths(0) = %+v, want zero range", got)
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Range{}, "all history"},
		{Range{From: "2024-01"}, "since 2024-01"},
		{Range{To: "2024-06"}, "up to 2024-06"},
		{Range{From: "2024-01", To: "2024-06"}, "2024-01 to 2024-06"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
