package main

import (
	"fmt"

	"github.com/Mavwarf/mailshell/internal/desktop"
)

type flags struct {
	configPath string
	beta       *bool
	ephemeral  bool
	register   bool
	unregister bool
	version    bool
	mailto     string
}

func parseArgs(args []string) (flags, error) {
	var f flags
	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "--config", "-c":
			if i+1 >= len(args) {
				return f, fmt.Errorf("%s requires a path", a)
			}
			f.configPath = args[i+1]
			i++
		case "--beta", "--stable":
			b := a == "--beta"
			f.beta = &b
		case "--ephemeral":
			f.ephemeral = true
		case "--register-mailto":
			f.register = true
		case "--unregister-mailto":
			f.unregister = true
		case "--version", "-v":
			f.version = true
		default:
			if desktop.MailtoArg(a) {
				f.mailto = a
				continue
			}
			return f, fmt.Errorf("unknown argument %q", a)
		}
	}
	if f.register && f.unregister {
		return f, fmt.Errorf("--register-mailto and --unregister-mailto are exclusive")
	}
	return f, nil
}

// mailtoIn returns the first mailto: link among a second instance's args.
func mailtoIn(args []string) string {
	for _, a := range args {
		if desktop.MailtoArg(a) {
			return a
		}
	}
	return ""
}
