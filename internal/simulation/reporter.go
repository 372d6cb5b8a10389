package simulation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Report formats
const (
	FormatConsole = "console"
	FormatCSV     = "csv"
	FormatJSON    = "json"
)

// WriteReport renders result in the requested format
func WriteReport(w io.Writer, result *AggregateResult, format string) error {
	switch strings.ToLower(format) {
	case FormatConsole, "":
		_, err := io.WriteString(w, GenerateConsoleReport(result))
		return err
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatJSON:
		return WriteJSON(w, result)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteReportFile renders result into outputPath, creating parent directories
func WriteReportFile(outputPath string, result *AggregateResult, format string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := WriteReport(f, result, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GenerateConsoleReport formats the odds table for terminal output
func GenerateConsoleReport(result *AggregateResult) string {
	var builder strings.Builder
	builder.WriteString("Three-Point Contest Odds\n")
	builder.WriteString("========================\n")
	builder.WriteString(fmt.Sprintf("Run: %s\n", result.RunID))
	if result.Model != "" {
		builder.WriteString(fmt.Sprintf("Model: %s\n", result.Model))
	}
	builder.WriteString(fmt.Sprintf("Trials: %d (seed %d)\n\n", result.Trials, result.Seed))

	table := tablewriter.NewWriter(&builder)
	table.SetHeader([]string{"Participant", "Wins", "Implied %", "Decimal Odds", "Finals", "Avg Qualifying"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, e := range result.Ranked() {
		table.Append([]string{
			e.Participant.Name,
			strconv.Itoa(e.Wins),
			fmt.Sprintf("%.1f", e.ImpliedProbability),
			e.OddsString(),
			strconv.Itoa(e.FinalsAppearances),
			fmt.Sprintf("%.2f", e.MeanQualifyingScore),
		})
	}
	table.Render()
	return builder.String()
}

// WriteCSV exports one row per participant in input order
func WriteCSV(w io.Writer, result *AggregateResult) error {
	writer := csv.NewWriter(w)
	header := []string{"player_id", "name", "wins", "implied_probability", "decimal_odds", "finals_appearances", "mean_qualifying_score"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range result.Entries {
		odds := ""
		if e.DecimalOdds != nil {
			odds = e.DecimalOdds.StringFixed(1)
		}
		row := []string{
			strconv.FormatInt(e.Participant.ID, 10),
			e.Participant.Name,
			strconv.Itoa(e.Wins),
			strconv.FormatFloat(e.ImpliedProbability, 'f', 4, 64),
			odds,
			strconv.Itoa(e.FinalsAppearances),
			strconv.FormatFloat(e.MeanQualifyingScore, 'f', 4, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON exports the full result as indented JSON
func WriteJSON(w io.Writer, result *AggregateResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// GenerateDistributionReport formats a score histogram for terminal output
func GenerateDistributionReport(dist ScoreDistribution) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Score distribution for %s over %d rounds\n", dist.Participant, dist.Rounds))
	builder.WriteString(fmt.Sprintf("Mean: %.2f  Std Dev: %.2f  Median: %.1f  Mode: %d  Range: %d-%d\n\n",
		dist.Mean, dist.StdDev, dist.Median, dist.Mode(), dist.Min, dist.Max))

	peak := 0
	for _, c := range dist.Counts {
		if c > peak {
			peak = c
		}
	}
	for score, count := range dist.Counts {
		if count == 0 {
			continue
		}
		width := 1
		if peak > 0 {
			width = count * 50 / peak
			if width == 0 {
				width = 1
			}
		}
		builder.WriteString(fmt.Sprintf("%2d | %-50s %d\n", score, strings.Repeat("#", width), count))
	}
	return builder.String()
}
