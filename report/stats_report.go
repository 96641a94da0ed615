package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"

	"escrutinio"
)

const barWidth = 20

// StatsReport renders the aggregate statistics as Markdown tables for
// terminal display or pasting into documents.
type StatsReport struct {
	Stats escrutinio.Stats
}

func NewStatsReport(stats escrutinio.Stats) *StatsReport {
	return &StatsReport{Stats: stats}
}

// PrintRankingTable writes one row per candidate, ordered by votes, with the
// candidate's share of valid votes and a proportional bar.
func (sr *StatsReport) PrintRankingTable(writer io.Writer) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Rank", "Candidate", "Party", "Votes", "Share", ""})

	// Configure for Markdown table formatting
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	counts := make([]float64, len(sr.Stats.Ranking))
	for i, entry := range sr.Stats.Ranking {
		counts[i] = float64(entry.Votes)
	}
	totalValid := floats.Sum(counts)
	var peak float64
	if len(counts) > 0 {
		peak = floats.Max(counts)
	}

	for i, entry := range sr.Stats.Ranking {
		var share string
		if totalValid > 0 {
			share = fmt.Sprintf("%.1f%%", counts[i]/totalValid*100)
		} else {
			share = "0.0%"
		}
		table.Append([]string{
			fmt.Sprint(i + 1),
			entry.Candidate.Name,
			entry.Candidate.Party,
			fmt.Sprint(entry.Votes),
			share,
			bar(counts[i], peak),
		})
	}

	table.Render()
}

// PrintSummaryTable writes the ballot totals, participation and station
// progress.
func (sr *StatsReport) PrintSummaryTable(writer io.Writer) {
	s := sr.Stats
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Metric", "Value"})

	// Configure for Markdown table formatting
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	rows := [][]string{
		{"Valid votes", fmt.Sprint(s.TotalValid)},
		{"Blank ballots", fmt.Sprint(s.TotalBlank)},
		{"Null ballots", fmt.Sprint(s.TotalNull)},
		{"Ballots cast", fmt.Sprint(s.TotalCast)},
		{"Eligible voters", fmt.Sprint(s.TotalEligibleSum)},
		{"Participation", fmt.Sprintf("%.1f%%", s.ParticipationPct)},
		{"Stations processed", fmt.Sprint(s.StationsProcessed)},
		{"Stations pending", fmt.Sprint(s.StationsPending)},
	}
	for _, row := range rows {
		table.Append(row)
	}

	table.Render()
}

func bar(count, peak float64) string {
	if peak == 0 {
		return ""
	}
	return strings.Repeat("#", int(count/peak*barWidth))
}
