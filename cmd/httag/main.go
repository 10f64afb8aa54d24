package main

import (
	"os"
	"strings"

	"httag-cli/internal/cli"
)

// subcommands are the first positional tokens that are not tag ids.
var subcommands = map[string]bool{
	"browse":     true,
	"links":      true,
	"child":      true,
	"predicate":  true,
	"encode":     true,
	"journal":    true,
	"docs":       true,
	"help":       true,
	"completion": true,
}

func rewriteDirectTagArgs(argv []string) []string {
	// Convenience: `httag <tag>` works like `httag browse <tag>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `httag --server ... fruit`), so we look for the
	// first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so a tag id is never swallowed.
	valueFlags := map[string]bool{
		"--server":    true,
		"--format":    true,
		"--journal":   true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--help":   true,
		"-h":       true,
	}

	browse := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "browse")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Everything after -- is positional, so the tag is browse's argument.
			if i+1 < len(argv) {
				return browse(i)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if subcommands[a] {
			return argv
		}
		return browse(i)
	}

	return argv
}

func main() {
	os.Args = rewriteDirectTagArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
