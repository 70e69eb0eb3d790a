package order

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// NumberGenerator produces human-readable order numbers.
type NumberGenerator interface {
	Next(now time.Time) (string, error)
}

// RandomNumberGenerator renders <PREFIX>-<UTC YYYYMMDD>-<8 upper hex>.
// Numbers are all upper case so lookups can normalize user input.
type RandomNumberGenerator struct {
	Prefix string
}

func NewRandomNumberGenerator(prefix string) *RandomNumberGenerator {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if p == "" {
		p = "GH"
	}
	return &RandomNumberGenerator{Prefix: p}
}

func (g *RandomNumberGenerator) Next(now time.Time) (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return FormatNumber(g.Prefix, now, strings.ToUpper(hex.EncodeToString(b[:]))), nil
}

// FormatNumber joins the order number parts.
func FormatNumber(prefix string, now time.Time, suffix string) string {
	return prefix + "-" + now.UTC().Format("20060102") + "-" + suffix
}
