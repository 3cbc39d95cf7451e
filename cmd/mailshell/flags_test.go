package main

import "testing"

func TestParseArgs(t *testing.T) {
	f, err := parseArgs([]string{"-c", "/tmp/x.json", "--beta", "--ephemeral", "mailto:a@b.c"})
	if err != nil {
		t.Fatal(err)
	}
	if f.configPath != "/tmp/x.json" || !f.ephemeral || f.mailto != "mailto:a@b.c" {
		t.Errorf("flags = %+v", f)
	}
	if f.beta == nil || !*f.beta {
		t.Error("--beta not recorded")
	}
}

func TestParseArgsStable(t *testing.T) {
	f, err := parseArgs([]string{"--stable"})
	if err != nil {
		t.Fatal(err)
	}
	if f.beta == nil || *f.beta {
		t.Error("--stable should record beta=false")
	}

	f, _ = parseArgs(nil)
	if f.beta != nil {
		t.Error("no flag should leave the preference alone")
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--config"},
		{"--bogus"},
		{"--register-mailto", "--unregister-mailto"},
	} {
		if _, err := parseArgs(args); err == nil {
			t.Errorf("parseArgs(%q) should fail", args)
		}
	}
}

func TestMailtoIn(t *testing.T) {
	if got := mailtoIn([]string{"--beta", "MAILTO:x@y.z"}); got != "MAILTO:x@y.z" {
		t.Errorf("mailtoIn = %q", got)
	}
	if got := mailtoIn([]string{"--beta"}); got != "" {
		t.Errorf("mailtoIn = %q, want empty", got)
	}
}
