package inventory

import (
	"context"

	"gymdesk/internal/gym"
	"gymdesk/internal/logger"
	"gymdesk/internal/notify"
)

// PublishLowStock raises one alert per product that ended below the threshold
// in branch. Callers invoke it after commit; failures are logged only.
func PublishLowStock(ctx context.Context, n notify.Notifier, gymID int, branch gym.Branch, products []Product) {
	seen := make(map[int]int, len(products))
	var latest []Product
	for _, p := range products {
		if i, ok := seen[p.ID]; ok {
			latest[i] = p
			continue
		}
		seen[p.ID] = len(latest)
		latest = append(latest, p)
	}

	for _, p := range latest {
		if !IsLowStock(p, branch) {
			continue
		}
		alert := notify.LowStockAlert(gymID, string(branch), p.Name, p.Stock.Of(branch))
		if err := n.Publish(ctx, alert); err != nil {
			logger.Error("failed to publish alert", "kind", alert.Kind, "product_id", p.ID, "error", err)
		}
	}
}
