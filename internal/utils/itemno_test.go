package utils

import "testing"

func TestItemNumber(t *testing.T) {
	tests := []struct {
		position int
		want     string
	}{
		{position: 1, want: "01"},
		{position: 2, want: "02"},
		{position: 9, want: "09"},
		{position: 10, want: "10"},
		{position: 99, want: "99"},
	}

	for _, tt := range tests {
		if got := ItemNumber(tt.position); got != tt.want {
			t.Errorf("ItemNumber(%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
}
