package parser

import (
	"fmt"
	"strings"
)

// MapError takes a raw input and a participle error, and returns a
// human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	parts := strings.Fields(strings.ToLower(input))
	cmd := parts[0]

	switch cmd {
	case "explore":
		return fmt.Errorf("The command explore must be: explore <village> by: <character>")
	case "sneak", "distract", "corner", "rush", "glide":
		return fmt.Errorf("The command %s must be: %s by: <character>", cmd, cmd)
	case "use":
		return fmt.Errorf("The command use must be: use <item> by: <character>")
	case "tame":
		return fmt.Errorf("The command tame must be: tame by: <character>")
	case "customize", "skip":
		return fmt.Errorf("The command %s must be: %s by: <character>", cmd, cmd)
	case "pick":
		return fmt.Errorf("The command pick must be: pick <option|random> by: <character>")
	case "register":
		return fmt.Errorf("The command register must be: register <name> by: <character>")
	case "stable":
		return fmt.Errorf("The command stable must be: stable by: <character>")
	}

	return fmt.Errorf("I wasn't able to understand your command")
}
