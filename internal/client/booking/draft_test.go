package booking

import (
	"errors"
	"slices"
	"testing"
)

func TestDraftToggleSeat(t *testing.T) {
	d := NewDraft(7)

	for _, id := range []int64{3, 1, 2} {
		if !d.toggleSeat(id) {
			t.Fatalf("toggleSeat(%d) = false on first toggle", id)
		}
	}
	if d.toggleSeat(2) {
		t.Fatal("second toggleSeat(2) = true")
	}

	if got := d.SeatIDs(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("SeatIDs() = %v, want [1 3]", got)
	}
	if d.SeatCount() != 2 || d.IsSelected(2) {
		t.Errorf("SeatCount() = %d, IsSelected(2) = %v", d.SeatCount(), d.IsSelected(2))
	}
}

func TestDraftSetRefreshment(t *testing.T) {
	d := NewDraft(7)

	steps := []struct {
		id   int64
		qty  int
		want []RefreshmentLine
	}{
		{1, 2, []RefreshmentLine{{1, 2}}},
		{2, 1, []RefreshmentLine{{1, 2}, {2, 1}}},
		{1, 5, []RefreshmentLine{{1, 5}, {2, 1}}},
		{1, 0, []RefreshmentLine{{2, 1}}},
		{3, 0, []RefreshmentLine{{2, 1}}},
		{1, 1, []RefreshmentLine{{2, 1}, {1, 1}}},
	}

	for i, s := range steps {
		if err := d.SetRefreshment(s.id, s.qty); err != nil {
			t.Fatalf("step %d: SetRefreshment(%d, %d) error = %v", i, s.id, s.qty, err)
		}
		if got := d.Refreshments(); !slices.Equal(got, s.want) {
			t.Fatalf("step %d: Refreshments() = %v, want %v", i, got, s.want)
		}
	}

	if err := d.SetRefreshment(1, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity error = %v", err)
	}
}

func TestDraftRefreshmentsIsCopy(t *testing.T) {
	d := NewDraft(7)
	_ = d.SetRefreshment(1, 2)

	lines := d.Refreshments()
	lines[0].Quantity = 99

	if d.Refreshments()[0].Quantity != 2 {
		t.Error("mutating the returned slice changed the draft")
	}
}
