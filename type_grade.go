package dungeon

import (
	"fmt"
	"strings"
)

// Grade is the quality tier of a market item.
type Grade string

const (
	White Grade = "white"
	Green Grade = "green"
	Blue  Grade = "blue"
)

// Grades lists the grades from the most common to the rarest.
var Grades = []Grade{White, Green, Blue}

// Label returns the korean display name of the grade.
func (g Grade) Label() string {
	switch g {
	case White:
		return "일반"
	case Green:
		return "고급"
	case Blue:
		return "희귀"
	default:
		return string(g)
	}
}

// ParseGrade parses a grade from its name or its korean label.
func ParseGrade(s string) (Grade, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "일반":
		return White, nil
	case "green", "고급":
		return Green, nil
	case "blue", "희귀":
		return Blue, nil
	default:
		return "", fmt.Errorf("unknown grade %q, want one of white, green, blue", s)
	}
}
