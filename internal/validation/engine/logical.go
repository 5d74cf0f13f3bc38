package engine

import (
	"fmt"
	"time"

	"github.com/streamhaven/dataforge/internal/dataset"
	"github.com/streamhaven/dataforge/internal/validation/domain"
)

// checkLogical runs phase three, the behavioral guardrails: subscription
// date ordering against the customer signup, the watch-duration and
// completion-rate bounds, and the usage timestamp window. Lookups use rows
// that survived phase one; a guardrail that needs a missing parent is
// skipped for that row since phase two already rejected it.
func (e *Engine) checkLogical(parsed map[string]*parsedTable, rep *domain.Report) {
	now := e.clk.Now()
	windowStart := now.AddDate(0, 0, -e.cfg.Generation.UsageLookbackDays)

	signups := make(map[int64]time.Time, len(parsed["customers"].rows))
	for _, row := range parsed["customers"].rows {
		if id, ok := row.values["customer_id"].(int64); ok {
			if d, ok := row.values["signup_date"].(time.Time); ok {
				signups[id] = d
			}
		}
	}
	durations := make(map[int64]int64, len(parsed["content"].rows))
	for _, row := range parsed["content"].rows {
		if id, ok := row.values["content_id"].(int64); ok {
			if d, ok := row.values["duration_minutes"].(int64); ok {
				durations[id] = d
			}
		}
	}

	for _, row := range parsed["subscriptions"].rows {
		start, _ := row.values["start_date"].(time.Time)
		end, _ := row.values["end_date"].(*time.Time)

		if end != nil && end.Before(start) {
			rep.Reject(domain.Rejection{
				Table:    "subscriptions",
				RowID:    row.id,
				Rule:     domain.RuleDateOrder,
				Field:    "end_date",
				Expected: "on or after " + dataset.FormatDate(start),
				Actual:   dataset.FormatDate(*end),
			})
		} else {
			rep.Pass("subscriptions", domain.RuleDateOrder)
		}

		customerID, _ := row.values["customer_id"].(int64)
		signup, ok := signups[customerID]
		if !ok {
			continue
		}
		if start.Before(signup) {
			rep.Reject(domain.Rejection{
				Table:    "subscriptions",
				RowID:    row.id,
				Rule:     domain.RuleSignupBound,
				Field:    "start_date",
				Expected: "on or after signup " + dataset.FormatDate(signup),
				Actual:   dataset.FormatDate(start),
			})
		} else {
			rep.Pass("subscriptions", domain.RuleSignupBound)
		}
	}

	for _, row := range parsed["usage_logs"].rows {
		watched, _ := row.values["duration_watched"].(int64)
		completion, _ := row.values["completion_rate"].(float64)
		ts, _ := row.values["timestamp"].(time.Time)

		contentID, _ := row.values["content_id"].(int64)
		if duration, ok := durations[contentID]; ok {
			if watched < 1 || watched > duration {
				rep.Reject(domain.Rejection{
					Table:    "usage_logs",
					RowID:    row.id,
					Rule:     domain.RuleDurationBound,
					Field:    "duration_watched",
					Expected: fmt.Sprintf("1..%d", duration),
					Actual:   fmt.Sprintf("%d", watched),
				})
			} else {
				rep.Pass("usage_logs", domain.RuleDurationBound)
			}
		}

		if completion < 0.05 || completion > 1.0 {
			rep.Reject(domain.Rejection{
				Table:    "usage_logs",
				RowID:    row.id,
				Rule:     domain.RuleCompletionRange,
				Field:    "completion_rate",
				Expected: "0.05..1.00",
				Actual:   fmt.Sprintf("%.2f", completion),
			})
		} else {
			rep.Pass("usage_logs", domain.RuleCompletionRange)
		}

		if ts.Before(windowStart) || ts.After(now) {
			rep.Reject(domain.Rejection{
				Table:    "usage_logs",
				RowID:    row.id,
				Rule:     domain.RuleTimestampWindow,
				Field:    "timestamp",
				Expected: fmt.Sprintf("%s..%s", dataset.FormatDateTime(windowStart), dataset.FormatDateTime(now)),
				Actual:   dataset.FormatDateTime(ts),
			})
		} else {
			rep.Pass("usage_logs", domain.RuleTimestampWindow)
		}
	}
}
