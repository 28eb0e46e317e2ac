package inventory

import (
	"fmt"
	"time"
)

// FormatBatchNumber renders the batch display code, e.g. BATCH-20260831-0007.
func FormatBatchNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("BATCH-%s-%04d", date.Format("20060102"), sequence)
}
