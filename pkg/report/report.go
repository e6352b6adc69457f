// Package report renders triage results for terminals and logs.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-triage/pkg/triage"
)

// Flag suffixes appended to a treatment line.
const (
	DrugSeekerMarker  = " ⚠️ Possible Drug-Seeker"
	AnxietyRiskMarker = " 🔴 High Anxiety Risk"
)

// Line formats one assessment as a treatment line.
func Line(a triage.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚑 Treating Patient %d (Severity: %d)", a.PatientID, a.Severity)
	if a.DrugSeeking {
		b.WriteString(DrugSeekerMarker)
	}
	if a.AnxietyRisk {
		b.WriteString(AnxietyRiskMarker)
	}
	return b.String()
}

// Render writes one line per assessment in priority order.
func Render(w io.Writer, result *triage.Result) error {
	if result == nil {
		return nil
	}
	for _, a := range result.Assessments {
		if _, err := fmt.Fprintln(w, Line(a)); err != nil {
			return err
		}
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	drugStyle = cellStyle.
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)

	anxietyStyle = cellStyle.
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Columns are the table headings used by Table and the dashboard.
var Columns = []string{"Rank", "Patient", "Severity", "Score", "Cluster", "Flags"}

// Row returns the table cells for one assessment.
func Row(a triage.Assessment) []string {
	return []string{
		strconv.Itoa(a.Rank),
		strconv.FormatUint(a.PatientID, 10),
		strconv.Itoa(a.Severity),
		strconv.FormatFloat(a.Score, 'f', 6, 64),
		strconv.Itoa(a.Cluster),
		Flags(a),
	}
}

// Flags returns the short flag text for one assessment, or "-" when none apply.
func Flags(a triage.Assessment) string {
	var parts []string
	if a.DrugSeeking {
		parts = append(parts, "drug-seeker")
	}
	if a.AnxietyRisk {
		parts = append(parts, "anxiety")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// Summary describes the run in one line: graph shape, convergence and flag
// counts.
func Summary(result *triage.Result) string {
	drug, anxiety := result.Flagged()
	return fmt.Sprintf(
		"round %d, %d patients, %d edges, %d clusters (largest %d, density %.2f), %d iterations (converged: %v), flagged: %d drug-seeker / %d anxiety",
		result.Round, len(result.Assessments), result.Graph.EdgeCount,
		result.Clusters, result.Largest, result.Cohesion,
		result.Iterations, result.Converged, drug, anxiety,
	)
}

// Central lists the most central patients as "id (score)", best first.
func Central(result *triage.Result) string {
	if len(result.Top) == 0 {
		return "most central: -"
	}
	parts := make([]string, len(result.Top))
	for i, n := range result.Top {
		parts[i] = fmt.Sprintf("%d (%.6f)", n.NodeID, n.Score)
	}
	return "most central: " + strings.Join(parts, ", ")
}

// Table renders the result as a bordered table with flagged rows coloured,
// followed by the run summary.
func Table(result *triage.Result) string {
	if result == nil {
		return ""
	}

	rows := make([][]string, len(result.Assessments))
	for i, a := range result.Assessments {
		rows[i] = Row(a)
	}
	flagCol := len(Columns) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col != flagCol:
				return cellStyle
			case result.Assessments[row].AnxietyRisk:
				return anxietyStyle
			case result.Assessments[row].DrugSeeking:
				return drugStyle
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(Summary(result)))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(Central(result)))
	b.WriteString("\n")
	return b.String()
}
