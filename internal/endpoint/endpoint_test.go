package endpoint

import (
	"errors"
	"testing"

	"github.com/Mavwarf/mailshell/internal/prefs"
)

const (
	stable = "https://www.fastmail.com/mail"
	beta   = "https://beta.fastmail.com/"
)

// brokenStore fails every read.
type brokenStore struct{ *prefs.MemStore }

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   string
	}{
		{"absent", nil, stable},
		{"false", strp("false"), stable},
		{"true", strp("true"), beta},
		{"garbage", strp("yes"), stable},
		{"empty", strp(""), stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := prefs.NewMemStore()
			if tt.stored != nil {
				st.Set(prefs.KeyBetaEnabled, *tt.stored)
			}
			sel := Selector{Store: st, Stable: stable, Beta: beta}
			if got := sel.Select(); got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectIsStableForSamePreference(t *testing.T) {
	st := prefs.NewMemStore()
	prefs.SetBool(st, prefs.KeyBetaEnabled, true)
	sel := Selector{Store: st, Stable: stable, Beta: beta}
	first := sel.Select()
	for i := 0; i < 5; i++ {
		if got := sel.Select(); got != first {
			t.Fatalf("Select() changed from %q to %q without a preference change", first, got)
		}
	}
}

func TestSelectReadErrorFallsBackToStable(t *testing.T) {
	sel := Selector{Store: brokenStore{prefs.NewMemStore()}, Stable: stable, Beta: beta}
	if got := sel.Select(); got != stable {
		t.Errorf("Select() = %q, want %q", got, stable)
	}
}

func TestComposeURL(t *testing.T) {
	sel := Selector{Compose: "https://www.fastmail.com/action/compose/?mailto=%s"}
	got, err := sel.ComposeURL("mailto:bob@example.com?subject=hi there")
	if err != nil {
		t.Fatal(err)
	}
	want := "https://www.fastmail.com/action/compose/?mailto=mailto%3Abob%40example.com%3Fsubject%3Dhi+there"
	if got != want {
		t.Errorf("ComposeURL = %q, want %q", got, want)
	}

	if _, err := sel.ComposeURL("https://evil.example.com"); err == nil {
		t.Error("expected error for non-mailto link")
	}
}

func TestComposeURLFollowsBeta(t *testing.T) {
	st := prefs.NewMemStore()
	st.Set(prefs.KeyBetaEnabled, "true")
	sel := Selector{
		Store:   st,
		Stable:  stable,
		Beta:    beta,
		Compose: "https://www.fastmail.com/action/compose/?mailto=%s",
	}
	got, err := sel.ComposeURL("mailto:bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	want := "https://beta.fastmail.com/action/compose/?mailto=mailto%3Abob%40example.com"
	if got != want {
		t.Errorf("ComposeURL = %q, want %q", got, want)
	}

	// A compose page on another host is left alone.
	sel.Compose = "https://compose.example.com/new?to=%s"
	got, _ = sel.ComposeURL("mailto:bob@example.com")
	if got != "https://compose.example.com/new?to=mailto%3Abob%40example.com" {
		t.Errorf("ComposeURL = %q", got)
	}
}

func TestOrigins(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{
			"defaults",
			Selector{Stable: stable, Beta: beta, Compose: "https://www.fastmail.com/action/compose/?mailto=%s"},
			[]string{"https://www.fastmail.com", "https://beta.fastmail.com"},
		},
		{
			"custom hosts and port",
			Selector{Stable: "https://mail.example.org/inbox", Beta: "http://localhost:8080/", Compose: "https://compose.example.org/%s"},
			[]string{"https://mail.example.org", "http://localhost:8080", "https://compose.example.org"},
		},
		{
			"case folded and deduplicated",
			Selector{Stable: "https://Mail.Example.org/", Beta: "https://mail.example.org/beta", Compose: "https://mail.example.org/c?m=%s"},
			[]string{"https://mail.example.org"},
		},
		{
			"unparseable skipped",
			Selector{Stable: stable, Beta: "::bad", Compose: ""},
			[]string{"https://www.fastmail.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sel.Origins()
			if len(got) != len(tt.want) {
				t.Fatalf("Origins() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Origins()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func strp(s string) *string { return &s }
