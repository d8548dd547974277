package id

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const PassIDPrefix = "SBPS-"

var rePassID = regexp.MustCompile(`^SBPS-[0-9A-F]{8}$`)

// NewPassID returns a human-shareable pass identifier: "SBPS-" followed by 8 uppercase hex characters
// taken from a random v4 UUID. Uniqueness across all time is enforced by the store, which retries on collision.
func NewPassID() string {
	u := uuid.New()
	return PassIDPrefix + strings.ToUpper(hex.EncodeToString(u[:4]))
}

func IsPassID(s string) bool { return rePassID.MatchString(s) }
