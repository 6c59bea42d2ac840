package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"Stonitor/internal/dashboard"
	"Stonitor/internal/model"
)

func (m Model) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 120, 36
	}

	side := sidePanelStyle.Width(sidePanelWidth).Height(height - 1).Render(m.sidePanel())
	main := m.mainPanel(width-sidePanelWidth-3, height-1)
	return lipgloss.JoinHorizontal(lipgloss.Top, side, " ", main)
}

func (m Model) sidePanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stonitor"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.focus == focusInput && m.search.Query() != "" {
		b.WriteString(m.searchResults())
		return b.String()
	}
	for i, r := range m.watch.Rows() {
		line := renderRow(r)
		if i == m.cursor && m.focus == focusWatchlist {
			line = selectedStyle.Width(sidePanelWidth).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(r dashboard.Row) string {
	head := symbolStyle.Render(fmt.Sprintf("%-6s", r.Ticker))
	switch {
	case r.Failed:
		return head + " " + errorStyle.Render("not found") + "\n"
	case r.Price == 0 && r.Fetching:
		return head + " " + dimStyle.Render("…") + "\n"
	}
	price := fmt.Sprintf("%.2f %s", r.Price, r.Currency)
	change := ""
	if r.HasChange {
		change = changeStyle(r.ChangePct).Render(fmt.Sprintf("%+.2f%%  %+.2f %s", r.ChangePct, r.Change, r.Currency))
	}
	return head + " " + price + "\n" + "  " + change
}

func (m Model) searchResults() string {
	results := m.search.Results()
	if m.search.Searching() && len(results) == 0 {
		return dimStyle.Render("searching…")
	}
	if len(results) == 0 {
		return dimStyle.Render("no matches, enter to open as ticker")
	}
	var b strings.Builder
	for i, q := range results {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		entry := symbolStyle.Render(name) + "\n" +
			dimStyle.Render(fmt.Sprintf("  %s  %s  %s", q.Symbol, q.Exchange, q.QuoteType))
		if i == m.resultCursor {
			entry = selectedStyle.Width(sidePanelWidth).Render(entry)
		}
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) mainPanel(width, height int) string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString(m.rangeBar())
	b.WriteString("\n\n")

	prices, volumes := m.window()
	chartHeight := height - lipgloss.Height(b.String()) - 3
	b.WriteString(renderChart(prices, volumes, width, chartHeight, m.chart.Range().Intraday()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("/ search  ↑↓ enter select  1-8 range  +/- zoom  h/l pan  q quit"))
	return b.String()
}

func (m Model) header() string {
	meta := m.chart.Metadata()
	if meta == nil {
		status := "loading…"
		if m.chart.Failed() {
			status = errorStyle.Render(fmt.Sprintf("Error stock '%s' not found", m.chart.Ticker()))
		}
		return symbolStyle.Render(m.chart.Ticker()) + "  " + status + "\n\n\n"
	}

	currency := meta.CurrencyCode()
	latest := m.chart.LatestPrice()
	line := symbolStyle.Render(meta.Symbol)
	if abs, pct, ok := m.chart.Change(); ok {
		line += "  " + changeStyle(pct).Render(fmt.Sprintf("%+.4f%%  %+.4f %s", pct, abs, currency))
	}
	return line + "\n" +
		priceStyle.Render(fmt.Sprintf("Current price: %.2f %s", latest, currency)) + "\n" +
		dimStyle.Render(meta.ExchangeName+"  "+meta.InstrumentType) + "\n"
}

func (m Model) rangeBar() string {
	parts := make([]string, len(model.Ranges))
	for i, r := range model.Ranges {
		label := fmt.Sprintf(" %d:%s ", i+1, r)
		if r == m.chart.Range() {
			parts[i] = rangeOnStyle.Render(label)
		} else {
			parts[i] = dimStyle.Render(label)
		}
	}
	return strings.Join(parts, "")
}

// window applies zoom and pan to the chart buffers.
func (m Model) window() ([]model.PricePoint, []model.VolumePoint) {
	prices, volumes := m.chart.Prices(), m.chart.Volumes()
	start, end := visibleWindow(len(prices), m.zoom, m.pan)
	if end > len(volumes) {
		return prices[start:end], nil
	}
	return prices[start:end], volumes[start:end]
}
