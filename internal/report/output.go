package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintBasicMetrics writes the basic metrics block.
func PrintBasicMetrics(w io.Writer, m *BasicMetrics) error {
	_, err := fmt.Fprintf(w, `
=== Basic Website Traffic Metrics ===
Total Pageviews: %s
Unique Visitors: %s
Total Sessions: %s
Pages per Session: %.2f
Sessions per Visitor: %.2f
Bounce Rate: %.2f%%
Conversion Rate: %.2f%%
Average Session Duration: %.0f seconds
`,
		thousands(m.TotalPageviews), thousands(m.UniqueVisitors), thousands(m.UniqueSessions),
		m.PagesPerSession, m.SessionsPerVisitor, m.BounceRate, m.ConversionRate, m.AvgSessionDuration)
	return err
}

// PrintSeries writes a series as a two-column table.
func PrintSeries(w io.Writer, s *Series) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\n=== %s ===\n", s.Title)
	fmt.Fprintf(tw, "%s\t%s\t\n", s.XLabel, s.YLabel)
	for _, p := range s.Points {
		fmt.Fprintf(tw, "%s\t%s\t\n", p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	return tw.Flush()
}

// PrintSources writes the traffic-source table.
func PrintSources(w io.Writer, stats []SourceStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\n=== Traffic Source Analysis ===")
	fmt.Fprintln(tw, "Source\tSessions\tBounce Rate (%)\tConversion Rate (%)\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t\n", s.Source, s.Sessions, s.BounceRate, s.ConversionRate)
	}
	return tw.Flush()
}

// PrintPages writes the popular-pages table.
func PrintPages(w io.Writer, stats []PageStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\n=== Page Analysis ===")
	fmt.Fprintln(tw, "Page\tPageviews\tAvg Time (s)\tExits\tExit Rate (%)\t")
	for _, p := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%.2f\t\n", p.Page, p.Pageviews, p.AvgTimeOnPage, p.Exits, p.ExitRate)
	}
	return tw.Flush()
}

// thousands formats n with English digit grouping.
func thousands(n int) string {
	return printer.Sprintf("%d", n)
}
