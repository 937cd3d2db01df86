package reports

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewReportID allocates an identifier of the form rpt_<YYYYMMDD><6 alnum>.
func NewReportID(now time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return fmt.Sprintf("rpt_%s%s", now.UTC().Format("20060102"), buf), nil
}
