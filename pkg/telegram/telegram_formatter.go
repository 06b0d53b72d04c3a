package telegram

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/common"
)

const (
	maxMessageLen   = 4090
	maxHeadlines    = 3
	maxNarrativeLen = 700
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatDigestForTelegram formats several dashboards into Markdown messages for Telegram,
// ensuring each message does not exceed the maximum length.
func FormatDigestForTelegram(dashboards []*dto.Dashboard, generatedAt time.Time) []string {
	if len(dashboards) == 0 {
		return []string{"No tickers in the watchlist."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString(fmt.Sprintf("📊 *Watchlist Digest* %s 📊\n\n", generatedAt.Format(common.DateLayout)))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Watchlist Digest Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for _, d := range dashboards {
		entry := FormatDashboardForTelegram(d) + "\n"
		if currentMessage.Len()+len(entry) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

// FormatDashboardForTelegram formats one dashboard into a Markdown string.
func FormatDashboardForTelegram(d *dto.Dashboard) string {
	var builder strings.Builder
	view := d.Profile.View()

	builder.WriteString(fmt.Sprintf("📈 *%s* - %s\n", escape(d.Ticker), escape(view.Name)))
	builder.WriteString(fmt.Sprintf("💰 *Price:* %s (52w %s - %s)\n", view.CurrentPrice, view.FiftyTwoWeekLow, view.FiftyTwoWeekHigh))
	builder.WriteString(fmt.Sprintf("🏭 *Sector:* %s / %s\n", escape(view.Sector), escape(view.Industry)))

	builder.WriteString(fmt.Sprintf("📉 *Trend:* %s\n", trendLine(d.Prices)))

	builder.WriteString(fmt.Sprintf("💬 *Sentiment:* %s\n", sentimentLine(d.Sentiment)))

	if d.News.Status == dto.StatusOK {
		builder.WriteString("📰 *News:*\n")
		for i, n := range d.News.Data {
			if i == maxHeadlines {
				break
			}
			builder.WriteString(fmt.Sprintf("  - %s\n", escape(n.Headline)))
		}
	} else {
		builder.WriteString(fmt.Sprintf("📰 *News:* %s\n", d.News.Message))
	}

	if d.BullBear.Status == dto.StatusOK {
		builder.WriteString(fmt.Sprintf("🐂🐻 *Bull/Bear:*\n%s\n", escape(truncate(d.BullBear.Data, maxNarrativeLen))))
	} else {
		builder.WriteString(fmt.Sprintf("⚠️ %s\n", escape(d.BullBear.Message)))
	}

	if degraded := d.DegradedSections(); len(degraded) > 0 {
		builder.WriteString(fmt.Sprintf("❗ *Degraded:* %s\n", escape(strings.Join(degraded, ", "))))
	}

	return builder.String()
}

// FormatDashboardText formats one dashboard as plain text for terminals.
func FormatDashboardText(d *dto.Dashboard) string {
	var builder strings.Builder
	view := d.Profile.View()

	builder.WriteString(fmt.Sprintf("%s (%s)\n", view.Name, d.Ticker))
	builder.WriteString(fmt.Sprintf("Query:         %s\n", d.Query))
	builder.WriteString(fmt.Sprintf("Sector:        %s\n", view.Sector))
	builder.WriteString(fmt.Sprintf("Industry:      %s\n", view.Industry))
	builder.WriteString(fmt.Sprintf("Current price: %s\n", view.CurrentPrice))
	builder.WriteString(fmt.Sprintf("52w high/low:  %s / %s\n", view.FiftyTwoWeekHigh, view.FiftyTwoWeekLow))
	builder.WriteString(fmt.Sprintf("Logo:          %s\n", view.LogoURL))
	builder.WriteString(fmt.Sprintf("Trend:         %s\n\n", trendLine(d.Prices)))

	builder.WriteString("Income statement:\n")
	if d.IncomeStatement.Status == dto.StatusOK {
		for _, row := range d.IncomeStatement.Data {
			builder.WriteString(fmt.Sprintf("  %s  revenue %s  ebitda %s  net income %s\n",
				row.Date, row.Revenue.StringFixed(0), row.EBITDA.StringFixed(0), row.NetIncome.StringFixed(0)))
		}
	} else {
		builder.WriteString(fmt.Sprintf("  %s\n", d.IncomeStatement.Message))
	}

	builder.WriteString("\nNews:\n")
	if d.News.Status == dto.StatusOK {
		for _, n := range d.News.Data {
			builder.WriteString(fmt.Sprintf("  - %s\n    %s\n", n.Headline, n.URL))
		}
	} else {
		builder.WriteString(fmt.Sprintf("  %s\n", d.News.Message))
	}

	builder.WriteString(fmt.Sprintf("\nSentiment: %s\n\n", sentimentLine(d.Sentiment)))

	builder.WriteString("Bull/Bear:\n")
	if d.BullBear.Status == dto.StatusOK {
		builder.WriteString(d.BullBear.Data + "\n")
	} else {
		builder.WriteString(d.BullBear.Message + "\n")
	}

	return builder.String()
}

// trendLine compares the latest close with its 50 and 200 day averages.
func trendLine(prices dto.Section[dto.PriceSeries]) string {
	if prices.Status != dto.StatusOK || len(prices.Data.Points) == 0 {
		if prices.Message != "" {
			return prices.Message
		}
		return common.NotAvailable
	}

	last := prices.Data.Points[len(prices.Data.Points)-1]
	parts := []string{fmt.Sprintf("close %.2f on %s", last.Close, last.Date)}
	for _, w := range []int{50, 200} {
		ma := last.MovingAverage(w)
		if !ma.Valid {
			parts = append(parts, fmt.Sprintf("MA%d %s", w, common.NotAvailable))
			continue
		}
		position := "above"
		if last.Close < ma.Float64 {
			position = "below"
		}
		parts = append(parts, fmt.Sprintf("%s MA%d %.2f", position, w, ma.Float64))
	}
	return strings.Join(parts, ", ")
}

func sentimentLine(s dto.Section[json.RawMessage]) string {
	if s.Status != dto.StatusOK {
		return s.Message
	}
	return string(s.Data)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
