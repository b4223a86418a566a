package types

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_PLAN             = "plan"
	UUID_PREFIX_PLAN_VERSION     = "pver"
	UUID_PREFIX_PRICE            = "price"
	UUID_PREFIX_SUBSCRIPTION     = "subs"
	UUID_PREFIX_SUBSCRIPTION_FEE = "fee"
	UUID_PREFIX_SLOT_TRANSACTION = "slottxn"
	UUID_PREFIX_REQUEST          = "req"
)

// GenerateUUID returns a lowercase ULID. ULIDs are lexicographically
// sortable by creation time which keeps list endpoints stable.
func GenerateUUID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String())
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the entity type,
// e.g. "price_01hgw2...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
