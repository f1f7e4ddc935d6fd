// Package reporting renders analyzed dividend schedules for the diagnostic
// tooling: CSV for export and markdown for terminal review.
package reporting

import (
	"fmt"
	"strings"

	"dividend-lab/internal/domain"
)

// RenderScheduleCSV renders an analyzed payment schedule as a CSV string.
// Nil derived fields render empty, matching their null semantics.
func RenderScheduleCSV(analyzed []*domain.AnalyzedPayment) string {
	var sb strings.Builder

	sb.WriteString("payment_id,ticker,ex_date,amount,days_since_prev,pmt_type,")
	sb.WriteString("frequency_num,frequency_label,annualized,normalized_div\n")

	for _, ap := range analyzed {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.6f,%s,%s,%d,%s,%s,%s\n",
			ap.PaymentID,
			ap.Ticker,
			ap.ExDate.Format("2006-01-02"),
			ap.Amount,
			formatInt(ap.DaysSincePrev),
			string(ap.Type),
			ap.FrequencyNum,
			ap.FrequencyLabel,
			formatFloat(ap.Annualized, 2),
			formatFloat(ap.NormalizedDiv, 6),
		))
	}

	return sb.String()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloat(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}
