package delivery

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	categoryColors = map[models.Category]lipgloss.Color{
		models.CategoryPrayer:     lipgloss.Color("62"),
		models.CategoryHadith:     lipgloss.Color("214"),
		models.CategoryQuranVerse: lipgloss.Color("35"),
		models.CategoryDhikr:      lipgloss.Color("205"),
		models.CategoryFriday:     lipgloss.Color("39"),
		models.CategoryHourly:     lipgloss.Color("245"),
	}
)

// Console prints reminders to a terminal
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Deliver(r models.Reminder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintln(c.out, Render(r))
	return err
}

// Render formats a reminder as a bordered block.
func Render(r models.Reminder) string {
	color, ok := categoryColors[r.Category]
	if !ok {
		color = lipgloss.Color("252")
	}

	var b strings.Builder
	b.WriteString(timeStyle.Render(r.FireTime.Format(constants.TimeFormat)))
	b.WriteString(" ")
	b.WriteString(titleStyle.Foreground(color).Render(r.Title))
	b.WriteString("\n")
	b.WriteString(r.Message)
	for _, line := range Details(r) {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(line))
	}

	return boxStyle.BorderForeground(color).Render(b.String())
}
