package main

import (
	"slices"
	"testing"

	"cinema-ticket/internal/client/booking"

	"github.com/spf13/viper"
)

func TestFlagsInt64Slice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []int64
	}{
		{"flag slice", []string{"7", "8"}, []int64{7, 8}},
		{"bracketed", []string{"[7,8]"}, []int64{7, 8}},
		{"env string", "7, 8,9", []int64{7, 8, 9}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("seats", tt.in)

			got, err := flagsInt64Slice(v, "seats")
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	v := viper.New()
	v.Set("seats", "7,x")
	if _, err := flagsInt64Slice(v, "seats"); err == nil {
		t.Error("non-numeric seat accepted")
	}
}

func TestParseRefreshments(t *testing.T) {
	got, err := parseRefreshments([]string{"5:2", "6:1"})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	want := []booking.RefreshmentLine{{ID: 5, Quantity: 2}, {ID: 6, Quantity: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"5", "x:1", "5:y"} {
		if _, err := parseRefreshments([]string{bad}); err == nil {
			t.Errorf("parseRefreshments(%q) accepted", bad)
		}
	}
}

func TestArgID(t *testing.T) {
	if id, err := argID([]string{"12"}, "showtime"); err != nil || id != 12 {
		t.Errorf("argID(12) = %d, %v", id, err)
	}
	if _, err := argID(nil, "showtime"); err == nil {
		t.Error("missing arg accepted")
	}
	if _, err := argID([]string{"0"}, "showtime"); err == nil {
		t.Error("zero id accepted")
	}
}
