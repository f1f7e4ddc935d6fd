package reporting

import (
	"fmt"
	"strings"

	"dividend-lab/internal/domain"
)

// RenderScheduleMarkdown renders an analyzed schedule as a markdown table
// with a statistics summary, for the single-ticker diagnostic output.
func RenderScheduleMarkdown(stats *domain.TickerStats, analyzed []*domain.AnalyzedPayment) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Dividend schedule: %s\n\n", stats.Ticker))

	sb.WriteString(fmt.Sprintf("- Payments: %d total, %d regular, %d special\n",
		stats.TotalPayments, stats.RegularPayments, stats.SpecialPayments))
	if stats.PaymentsPerYear > 0 {
		sb.WriteString(fmt.Sprintf("- Current cadence: %s (%d payments/year)\n",
			domain.FrequencyLabel(stats.PaymentsPerYear), stats.PaymentsPerYear))
	}
	if stats.LatestAnnualized != nil {
		sb.WriteString(fmt.Sprintf("- Latest annualized rate: %.2f\n", *stats.LatestAnnualized))
	}
	if stats.RegularPayments > 0 {
		sb.WriteString(fmt.Sprintf("- Normalized dividend: mean %.6f, stddev %.6f, range [%.6f, %.6f]\n",
			stats.NormalizedMean, stats.NormalizedStddev, stats.NormalizedMin, stats.NormalizedMax))
	}
	sb.WriteString("\n")

	sb.WriteString("| Ex-Date | Amount | Gap | Type | Frequency | Annualized | Normalized |\n")
	sb.WriteString("|---------|--------|-----|------|-----------|------------|------------|\n")
	for _, ap := range analyzed {
		sb.WriteString(fmt.Sprintf("| %s | %.4f | %s | %s | %s | %s | %s |\n",
			ap.ExDate.Format("2006-01-02"),
			ap.Amount,
			orDash(formatInt(ap.DaysSincePrev)),
			string(ap.Type),
			ap.FrequencyLabel,
			orDash(formatFloat(ap.Annualized, 2)),
			orDash(formatFloat(ap.NormalizedDiv, 6)),
		))
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
