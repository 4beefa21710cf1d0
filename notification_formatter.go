package main

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/grutapig/ytcomments/comments"
)

type NotificationFormatter struct{}

// RunSummary is what gets reported once a run reaches a terminal state.
type RunSummary struct {
	RunUUID    string
	VideoID    string
	OutputFile string
	Outcome    *comments.Outcome
	Err        error
	Elapsed    time.Duration
}

func NewNotificationFormatter() *NotificationFormatter {
	return &NotificationFormatter{}
}

// FormatForConsole renders the summary printed at the end of a CLI run.
func (nf *NotificationFormatter) FormatForConsole(summary RunSummary) string {
	if summary.Err != nil {
		return fmt.Sprintf("❌ %s\n", comments.UserMessage(summary.Err))
	}

	out := summary.Outcome
	var b strings.Builder
	b.WriteString("🎉 Scraping completed!\n")
	b.WriteString("📈 Final statistics:\n")
	fmt.Fprintf(&b, "   - Video: %s\n", summary.VideoID)
	fmt.Fprintf(&b, "   - Comments scraped: %d / %d expected\n", out.Progress.Scraped, out.Progress.Total)
	fmt.Fprintf(&b, "   - Processed pages: %d\n", out.Pages)
	fmt.Fprintf(&b, "   - End reason: %s\n", out.EndReason)
	fmt.Fprintf(&b, "   - Total runtime: %v\n", summary.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "💾 Data saved to %s\n", summary.OutputFile)
	return b.String()
}

// FormatForTelegram renders the same summary as Telegram HTML.
func (nf *NotificationFormatter) FormatForTelegram(summary RunSummary) string {
	if summary.Err != nil {
		return fmt.Sprintf(`❌ <b>Comment download failed</b>

<b>Video:</b> <code>%s</code>
<b>Reason:</b> %s
<b>Run:</b> <code>%s</code>`,
			html.EscapeString(summary.VideoID),
			html.EscapeString(comments.UserMessage(summary.Err)),
			summary.RunUUID)
	}

	out := summary.Outcome
	return fmt.Sprintf(`✅ <b>Comments downloaded</b>

<b>Video:</b> <code>%s</code>
<b>Comments:</b> %d / %d (%s)
<b>Pages:</b> %d
<b>End reason:</b> %s
<b>Runtime:</b> %v
<b>Run:</b> <code>%s</code>`,
		html.EscapeString(summary.VideoID),
		out.Progress.Scraped, out.Progress.Total, nf.formatPercent(out.Progress),
		out.Pages,
		out.EndReason,
		summary.Elapsed.Round(time.Second),
		summary.RunUUID)
}

func (nf *NotificationFormatter) formatPercent(p comments.Progress) string {
	if p.Total <= 0 {
		return "total unknown"
	}
	return fmt.Sprintf("%.0f%%", p.Fraction()*100)
}

// FormatRunHistory renders run log records, one line per run.
func (nf *NotificationFormatter) FormatRunHistory(runs []ScrapeRunModel) string {
	if len(runs) == 0 {
		return "📭 No runs recorded yet\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🗂 Last %d runs:\n", len(runs))
	for _, run := range runs {
		fmt.Fprintf(&b, "   - %s %s %s: %d/%d comments, %d pages",
			run.StartedAt.Format("2006-01-02 15:04:05"), run.VideoID, run.Status,
			run.RowsScraped, run.ExpectedTotal, run.PagesFetched)
		if run.EndReason != "" {
			fmt.Fprintf(&b, " (%s)", run.EndReason)
		}
		if run.ErrorMessage != "" {
			fmt.Fprintf(&b, " error: %s", run.ErrorMessage)
		}
		b.WriteString("\n")
	}
	return b.String()
}
