//go:build darwin

package toast

import "testing"

func TestScript(t *testing.T) {
	got := script(`New "mail"`, "3 unread")
	want := `display notification "3 unread" with title "New \"mail\""`
	if got != want {
		t.Errorf("script = %q, want %q", got, want)
	}
}
