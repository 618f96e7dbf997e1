package module

import (
	"context"

	rldom "overflowd/internal/services/ratelimit/domain"
)

// PurgerPort is consumed by the maintenance scheduler to expire stale
// minute-counter rows; kept distinct from rldom.Port so the hot ingest path
// only ever sees the Check method
type PurgerPort interface {
	PurgeExpired(ctx context.Context, kind rldom.Kind, cutoffMinute int64) (int64, error)
}

// Ports exported by the rate limiter module
type Ports struct {
	Limiter rldom.Port
	Purger  PurgerPort
}
