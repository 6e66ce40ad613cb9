package dedupe

import (
	"context"
	"sync"
	"time"

	"salespipeline/internal/usecase/interfaces"
)

// LocalDeliveryDeduper is the single-process fallback used when REDIS_ADDR is
// not configured.
type LocalDeliveryDeduper struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

var _ interfaces.IDeliveryDeduper = (*LocalDeliveryDeduper)(nil)

func NewLocalDeliveryDeduper() *LocalDeliveryDeduper {
	return &LocalDeliveryDeduper{held: map[string]time.Time{}, clock: time.Now}
}

func (d *LocalDeliveryDeduper) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.clock()
	for k, exp := range d.held {
		if !now.Before(exp) {
			delete(d.held, k)
		}
	}
	if _, ok := d.held[key]; ok {
		return false, nil
	}
	d.held[key] = now.Add(ttl)
	return true, nil
}

func (d *LocalDeliveryDeduper) Release(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.held, key)
	return nil
}
