package store

import (
	"fmt"
	"strconv"
	"time"

	contentdomain "github.com/streamhaven/dataforge/internal/content/domain"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	"github.com/streamhaven/dataforge/internal/dataset"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	subscriptiondomain "github.com/streamhaven/dataforge/internal/subscription/domain"
	usagedomain "github.com/streamhaven/dataforge/internal/usage/domain"
)

// The decoders turn validated handoff records back into gorm models,
// skipping rows the validation report rejected. Records reaching this
// point already passed the schema phase, so parse failures are returned
// as errors rather than rejections.

type skipFunc func(int64) bool

func decodeCustomers(t dataset.Table, skip skipFunc) ([]customerdomain.Customer, error) {
	out := make([]customerdomain.Customer, 0, len(t.Rows))
	for i, rec := range t.Rows {
		id := t.RowID(i)
		if skip(id) {
			continue
		}
		signup, err := parseDate(t.Schema.Name, id, "signup_date", rec[3])
		if err != nil {
			return nil, err
		}
		out = append(out, customerdomain.Customer{
			ID:         id,
			Name:       rec[1],
			Email:      rec[2],
			SignupDate: signup,
			DeviceType: rec[4],
			Country:    rec[5],
		})
	}
	return out, nil
}

func decodePlans(t dataset.Table, skip skipFunc) ([]plandomain.Plan, error) {
	out := make([]plandomain.Plan, 0, len(t.Rows))
	for i, rec := range t.Rows {
		id := t.RowID(i)
		if skip(id) {
			continue
		}
		price, err := parseFloat(t.Schema.Name, id, "price", rec[2])
		if err != nil {
			return nil, err
		}
		out = append(out, plandomain.Plan{ID: id, Name: rec[1], Price: price})
	}
	return out, nil
}

func decodeContent(t dataset.Table, skip skipFunc) ([]contentdomain.Content, error) {
	out := make([]contentdomain.Content, 0, len(t.Rows))
	for i, rec := range t.Rows {
		id := t.RowID(i)
		if skip(id) {
			continue
		}
		duration, err := parseInt(t.Schema.Name, id, "duration_minutes", rec[3])
		if err != nil {
			return nil, err
		}
		out = append(out, contentdomain.Content{
			ID:              id,
			Title:           rec[1],
			Genre:           rec[2],
			DurationMinutes: int(duration),
		})
	}
	return out, nil
}

func decodeSubscriptions(t dataset.Table, skip skipFunc) ([]subscriptiondomain.Subscription, error) {
	out := make([]subscriptiondomain.Subscription, 0, len(t.Rows))
	for i, rec := range t.Rows {
		id := t.RowID(i)
		if skip(id) {
			continue
		}
		customerID, err := parseInt(t.Schema.Name, id, "customer_id", rec[1])
		if err != nil {
			return nil, err
		}
		planID, err := parseInt(t.Schema.Name, id, "plan_id", rec[2])
		if err != nil {
			return nil, err
		}
		start, err := parseDate(t.Schema.Name, id, "start_date", rec[3])
		if err != nil {
			return nil, err
		}
		var end *time.Time
		if rec[4] != "" {
			d, err := parseDate(t.Schema.Name, id, "end_date", rec[4])
			if err != nil {
				return nil, err
			}
			end = &d
		}
		autoRenew, err := strconv.ParseBool(rec[5])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: auto_renew: %w", t.Schema.Name, id, err)
		}
		out = append(out, subscriptiondomain.Subscription{
			ID:         id,
			CustomerID: customerID,
			PlanID:     planID,
			StartDate:  start,
			EndDate:    end,
			AutoRenew:  autoRenew,
		})
	}
	return out, nil
}

func decodeUsageLogs(t dataset.Table, skip skipFunc) ([]usagedomain.UsageLog, error) {
	out := make([]usagedomain.UsageLog, 0, len(t.Rows))
	for i, rec := range t.Rows {
		id := t.RowID(i)
		if skip(id) {
			continue
		}
		customerID, err := parseInt(t.Schema.Name, id, "customer_id", rec[1])
		if err != nil {
			return nil, err
		}
		contentID, err := parseInt(t.Schema.Name, id, "content_id", rec[2])
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(dataset.DateTimeLayout, rec[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: timestamp: %w", t.Schema.Name, id, err)
		}
		watched, err := parseInt(t.Schema.Name, id, "duration_watched", rec[4])
		if err != nil {
			return nil, err
		}
		completion, err := parseFloat(t.Schema.Name, id, "completion_rate", rec[5])
		if err != nil {
			return nil, err
		}
		out = append(out, usagedomain.UsageLog{
			ID:              id,
			CustomerID:      customerID,
			ContentID:       contentID,
			Timestamp:       ts,
			DurationWatched: int(watched),
			CompletionRate:  completion,
		})
	}
	return out, nil
}

func parseInt(table string, id int64, field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: %s: %w", table, id, field, err)
	}
	return v, nil
}

func parseFloat(table string, id int64, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: %s: %w", table, id, field, err)
	}
	return v, nil
}

func parseDate(table string, id int64, field, raw string) (time.Time, error) {
	v, err := time.Parse(dataset.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s row %d: %s: %w", table, id, field, err)
	}
	return v, nil
}
