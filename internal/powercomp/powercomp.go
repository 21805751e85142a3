// Package powercomp holds the static tab-completion tables for the packaged
// system76-power CLI. The tables are purely declarative: each command-line
// prefix maps to the valid next tokens, and the completions command renders
// shell scripts around them.
package powercomp

// Subcommands are the top-level system76-power subcommands.
var Subcommands = []string{
	"charge-thresholds",
	"daemon",
	"graphics",
	"profile",
	"help",
}

// nextTokens maps a subcommand to its valid next tokens.
var nextTokens = map[string][]string{
	"charge-thresholds": {"balanced", "full_charge", "max_lifespan", "--list-profiles"},
	"daemon":            {"--quiet", "--verbose"},
	"graphics":          {"compute", "hybrid", "integrated", "nvidia", "switchable", "power"},
	"profile":           {"balanced", "battery", "performance"},
	"help":              Subcommands,
}

// graphicsPowerTokens are the arguments of "graphics power".
var graphicsPowerTokens = []string{"auto", "off", "on"}

// SuggestionsFor returns the valid next tokens for a partial system76-power
// command line. tokens holds the words after the program name. Returns nil
// when the position takes no completable token.
func SuggestionsFor(tokens []string) []string {
	switch len(tokens) {
	case 0:
		return Subcommands
	case 1:
		return nextTokens[tokens[0]]
	case 2:
		if tokens[0] == "graphics" && tokens[1] == "power" {
			return graphicsPowerTokens
		}
	}
	return nil
}
