// Package report renders ranking results for people and for pipelines
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dd0wney/cluso-hits/pkg/config"
	"github.com/dd0wney/cluso-hits/pkg/ranking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	scoreStyle = cellStyle.Align(lipgloss.Right)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Render writes rep to w in the given format
func Render(w io.Writer, rep *ranking.Report, format string) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, rep)
	case config.FormatTable, "":
		return renderTable(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, rep *ranking.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func renderTable(w io.Writer, rep *ranking.Report) error {
	summary := fmt.Sprintf("%d users, %d retweet edges, %d self-retweets dropped, %d of %d records skipped, %d iterations",
		rep.Nodes, rep.Edges, rep.SelfLoops, rep.RecordsSkipped, rep.RecordsRead, rep.Iterations)
	if rep.Converged {
		summary += " (converged)"
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		summaryStyle.Render(summary),
		"",
		titleStyle.Render("Top hubs"),
		scoreTable(rep.Hubs).String(),
		"",
		titleStyle.Render("Top authorities"),
		scoreTable(rep.Authorities).String(),
	)

	_, err := fmt.Fprintln(w, out)
	return err
}

func scoreTable(entries []ranking.Entry) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(e.ID, 10),
			e.Name,
			strconv.FormatFloat(e.Score, 'f', 6, 64),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "USER ID", "NAME", "SCORE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3:
				return scoreStyle
			default:
				return cellStyle
			}
		})
}
