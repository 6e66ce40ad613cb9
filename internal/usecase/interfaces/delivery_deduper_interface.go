package interfaces

import (
	"context"
	"time"
)

// IDeliveryDeduper suppresses concurrent duplicate webhook deliveries before
// they reach the entity store. Claim returns false when the key is already
// held. It is an optimisation only; correctness comes from compare-and-set.
type IDeliveryDeduper interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
