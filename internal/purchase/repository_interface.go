package purchase

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/gym"
)

type Repository interface {
	// Create writes the header, its lines and the restocks in one transaction.
	Create(ctx context.Context, p *Purchase, branch gym.Branch) (*Purchase, error)
	List(ctx context.Context, gymID int, period api.DateRange) ([]Purchase, error)
	Get(ctx context.Context, id, gymID int) (*Purchase, error)
}
