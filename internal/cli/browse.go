package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/pkg/schema"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command that opens an interactive record
// list for one collection.
func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [type]",
		Short: "Interactively inspect a collection's records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := flags.newService()
			if err != nil {
				return err
			}

			kind, err := schema.ParseKind(args[0])
			if err != nil {
				return err
			}
			records, err := svc.GetAll(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("%s is empty", args[0])
				return nil
			}

			idField, err := schema.IDFieldFor(kind)
			if err != nil {
				return err
			}

			model := newRecordListModel(string(kind), idField, records)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// recordListModel is the bubbletea model for browsing a collection.
type recordListModel struct {
	kind    string
	idField string
	records []schema.Record

	cursor int
	offset int
	height int

	// detail switches the view to the selected record's fields.
	detail bool
}

func newRecordListModel(kind, idField string, records []schema.Record) recordListModel {
	return recordListModel{
		kind:    kind,
		idField: idField,
		records: records,
		height:  15,
	}
}

func (m recordListModel) Init() tea.Cmd {
	return nil
}

func (m recordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.detail && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if !m.detail && m.cursor < len(m.records)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.detail = !m.detail
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m recordListModel) View() string {
	if m.detail {
		return m.detailView()
	}
	return m.listView()
}

func (m recordListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Browse %s", m.kind)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.records) {
		end = len(m.records)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		rec := m.records[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, recordID(rec, m.idField), recordLabel(rec)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.records))))

	return b.String()
}

func (m recordListModel) detailView() string {
	rec := m.records[m.cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s / %s", m.kind, recordID(rec, m.idField))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(28)
	for _, key := range sortedKeys(rec) {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(key))
		b.WriteString(StyleValue.Render(fmt.Sprintf("%v", rec[key])))
		b.WriteString("\n")
	}

	return b.String()
}

func recordID(rec schema.Record, idField string) string {
	if id, ok := rec[idField].(string); ok {
		return id
	}
	return "—"
}

// recordLabel picks the record's human-readable name. The collections use
// different field names for it, so probe the known ones.
func recordLabel(rec schema.Record) string {
	for _, key := range []string{"displayName", "bannerName", "eventName"} {
		if name, ok := rec[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

func sortedKeys(rec schema.Record) []string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
