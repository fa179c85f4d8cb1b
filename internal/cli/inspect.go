package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/paint"
)

// inspectCommand creates the inspect command for browsing painted node
// attributes. It accepts either a paint result JSON or a raw layout, which
// is painted on the fly.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse painted node attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.loadResult(args[0])
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), renderAttrTable(result.Attrs, -1, 0, len(result.Attrs)))
				return nil
			}

			model := NewAttrListModel(result.Attrs)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table without the interactive browser")
	return cmd
}

// loadResult reads a paint result, painting the input first if it turns out
// to be a layout rather than a result.
func (c *CLI) loadResult(path string) (*paint.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if result, err := paint.UnmarshalResult(data); err == nil && len(result.Attrs) > 0 {
		return result, nil
	}

	l, err := layout.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("input is a layout, painting it", "nodes", len(l.Nodes))
	return paint.Paint(&l, paint.Options{Logger: c.Logger})
}

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// AttrListModel - Interactive attribute browsing
// =============================================================================

// AttrListModel is the bubbletea model for browsing node attributes.
type AttrListModel struct {
	Attrs  []paint.NodeAttrs
	Cursor int
	Height int
	Offset int
}

// NewAttrListModel creates a new attribute list model.
func NewAttrListModel(attrs []paint.NodeAttrs) AttrListModel {
	return AttrListModel{
		Attrs:  attrs,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m AttrListModel) Init() tea.Cmd {
	return nil
}

func (m AttrListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Attrs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m AttrListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Painted Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Attrs) {
		end = len(m.Attrs)
	}

	b.WriteString(renderAttrTable(m.Attrs, m.Cursor, m.Offset, end))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Attrs))))

	return b.String()
}

// renderAttrTable renders rows [offset,end) of attrs as a lipgloss table.
// A cursor of -1 disables row highlighting.
func renderAttrTable(attrs []paint.NodeAttrs, cursor, offset, end int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i := offset; i < end; i++ {
		a := attrs[i]

		marker := "  "
		if i == cursor {
			marker = "▸ "
		}

		swatch := "—"
		if a.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("██") + " " + a.Color
		}

		kind := "node"
		switch {
		case a.Dummy:
			kind = "dummy"
		case a.Leaf:
			kind = "leaf"
		}

		bounds := fmt.Sprintf("%.0f×%.0f @ %.0f,%.0f", a.Bounds.Width, a.Bounds.Height, a.Bounds.X, a.Bounds.Y)
		rows = append(rows, []string{
			marker + strings.Repeat("· ", a.Level) + a.ID,
			a.Label,
			fmt.Sprintf("%d", a.Level),
			kind,
			swatch,
			bounds,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Label", "Lvl", "Kind", "Colour", "Bounds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := offset + row
			if actualIdx == cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if actualIdx < len(attrs) && attrs[actualIdx].Dummy {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
