package logger

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

func getDefaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	levels := map[charmlog.Level]string{
		charmlog.DebugLevel: "63",
		charmlog.InfoLevel:  "86",
		charmlog.WarnLevel:  "192",
		charmlog.ErrorLevel: "204",
		charmlog.FatalLevel: "134",
	}
	for level, color := range levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(levelLabel(level)).
			Bold(true).
			Foreground(lipgloss.Color(color))
	}
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styles.Prefix = lipgloss.NewStyle().Faint(true)
	return styles
}

// levelLabel prints CRITICAL for the fatal level so threshold names match APP_LOGGERLEVEL.
func levelLabel(level charmlog.Level) string {
	if level == charmlog.FatalLevel {
		return "CRITICAL"
	}
	return strings.ToUpper(level.String())
}
