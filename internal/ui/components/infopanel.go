package components

import (
	"strings"

	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// InfoPanel is a bordered block of label/value rows
type InfoPanel struct {
	title string
	items []InfoItem
}

// InfoItem represents a single piece of information
type InfoItem struct {
	Label string
	Value string
}

// NewInfoPanel creates a new info panel
func NewInfoPanel(title string) *InfoPanel {
	return &InfoPanel{title: title}
}

// AddItem appends a row. Empty values are skipped.
func (p *InfoPanel) AddItem(label, value string) {
	if value == "" {
		return
	}
	p.items = append(p.items, InfoItem{Label: label, Value: value})
}

// Items returns the rows in insertion order
func (p *InfoPanel) Items() []InfoItem {
	return p.items
}

// Render renders the panel no wider than width
func (p *InfoPanel) Render(width int) string {
	panelWidth := width - 4
	if panelWidth < 40 {
		panelWidth = 40
	}
	if panelWidth > 100 {
		panelWidth = 100
	}

	labelWidth := 0
	for _, item := range p.items {
		if len(item.Label) > labelWidth {
			labelWidth = len(item.Label)
		}
	}

	var content strings.Builder
	content.WriteString(styles.SubtitleStyle.Render(p.title))
	for _, item := range p.items {
		content.WriteString("\n")
		label := item.Label + ":" + strings.Repeat(" ", labelWidth-len(item.Label)+1)
		content.WriteString(styles.LabelStyle.Render(label))
		content.WriteString(utils.TruncatePath(item.Value, panelWidth-labelWidth-6))
	}

	return styles.PanelStyle.Width(panelWidth).Render(content.String())
}
