package notify

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/logger"
)

const (
	KindLowStock = "low_stock"
	KindExpiring = "expiring"
)

type Alert struct {
	Kind    string    `json:"kind"`
	GymID   int       `json:"gym_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Notifier publishes operator alerts. Publishing happens after the triggering
// write has committed; a failure is logged by the caller and never undoes it.
type Notifier interface {
	Publish(ctx context.Context, alert Alert) error
}

// Nop is used when no alert queue is configured.
type Nop struct{}

func (Nop) Publish(_ context.Context, alert Alert) error {
	logger.Debug("alert dropped, queue disabled", "kind", alert.Kind, "subject", alert.Subject)
	return nil
}

func LowStockAlert(gymID int, branch, productName string, remaining int) Alert {
	return Alert{
		Kind:    KindLowStock,
		GymID:   gymID,
		Subject: "Low stock: " + productName,
		Body: fmt.Sprintf("%s is running low in the %s branch: %d left.",
			productName, branch, remaining),
	}
}

func ExpiringAlert(gymID int, fullName, phone string, endDate time.Time) Alert {
	return Alert{
		Kind:    KindExpiring,
		GymID:   gymID,
		Subject: "Subscription expiring: " + fullName,
		Body: fmt.Sprintf("The subscription of %s (%s) ends on %s.",
			fullName, phone, endDate.Format("2006-01-02")),
	}
}
