package dock

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-3, ""},
		{1, "1"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := Label(tt.n); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
