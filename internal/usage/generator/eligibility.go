package generator

import (
	"time"

	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	subscriptiondomain "github.com/streamhaven/dataforge/internal/subscription/domain"
)

// eligibleCustomer is a customer holding a subscription whose window overlaps
// the usage lookback window, tagged with the plan of the latest such
// subscription.
type eligibleCustomer struct {
	customerID int64
	planID     int64
	start      time.Time
}

// buildEligibility returns the eligible customers in customer-id order, so
// downstream weighted draws are independent of map iteration.
func buildEligibility(customers []customerdomain.Customer, subs []subscriptiondomain.Subscription, windowStart, now time.Time) []eligibleCustomer {
	latest := make(map[int64]eligibleCustomer, len(customers))
	for _, sub := range subs {
		if !sub.Active(windowStart, now) {
			continue
		}
		current, ok := latest[sub.CustomerID]
		if !ok || sub.StartDate.After(current.start) {
			latest[sub.CustomerID] = eligibleCustomer{
				customerID: sub.CustomerID,
				planID:     sub.PlanID,
				start:      sub.StartDate,
			}
		}
	}

	eligible := make([]eligibleCustomer, 0, len(latest))
	for _, cust := range customers {
		if entry, ok := latest[cust.ID]; ok {
			eligible = append(eligible, entry)
		}
	}
	return eligible
}
