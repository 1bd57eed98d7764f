package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newOrderNumber generates a customer-facing order number. The millisecond
// timestamp keeps numbers roughly time-ordered; the random suffix keeps them
// unique under concurrent checkouts.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
