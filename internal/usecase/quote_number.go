package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// newQuoteNumber returns a human-readable unique number, e.g. Q-20250101-3F9A1C.
func newQuoteNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "Q-" + now.UTC().Format("20060102") + "-" + suffix
}
