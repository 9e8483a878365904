package historyrender

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"personnel-admin/models"
)

var badgePalette = map[BadgeColor]lipgloss.Color{
	BadgeGreen:  lipgloss.Color("#2E7D32"),
	BadgeBlue:   lipgloss.Color("#1565C0"),
	BadgeOrange: lipgloss.Color("#EF6C00"),
	BadgeRed:    lipgloss.Color("#C62828"),
	BadgePurple: lipgloss.Color("#6A1B9A"),
	BadgeGray:   lipgloss.Color("#616161"),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
)

// Headers заголовки колонок для вида истории
func Headers(kind models.HistoryKind) []string {
	value := "Действие"
	note := "Примечание"
	if kind == models.HistoryKindStatus {
		value = "Статус"
		note = "Описание"
	}
	return []string{"Сотрудник", value, "Изменение", note, "С", "По"}
}

// Cells значения колонок строки без оформления
func (r Row) Cells() []string {
	return []string{r.Employee, r.Badge, r.Change, r.Note, r.FromDate, r.ToDate}
}

func badge(row Row) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(badgePalette[row.Color]).
		Render(row.Badge)
}

// Table выводит строки таблицей; пустой список выводится строкой "нет записей"
func Table(w io.Writer, kind models.HistoryKind, rows []Row) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(kind.Spec().Title))
	sb.WriteString("\n")
	if len(rows) == 0 {
		sb.WriteString(mutedStyle.Render("нет записей"))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	headers := Headers(kind)
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := row.Cells()
		line[1] = badge(row)
		cells = append(cells, line)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, line := range cells {
		for i, cell := range line {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	total := len(headers) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	sep := mutedStyle.Render("|")
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, line := range cells {
		for i, cell := range line {
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < len(line)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
