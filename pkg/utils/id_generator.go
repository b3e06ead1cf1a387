package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ReferenceGenerator generates unique external references for ledger and
// registry records.
type ReferenceGenerator struct {
	snowflake *Snowflake
	mu        sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

func NewReferenceGenerator(snowflake *Snowflake) *ReferenceGenerator {
	return &ReferenceGenerator{
		snowflake: snowflake,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// generatePrefixed generates a prefixed reference.
// Format: PREFIX-{SNOWFLAKE}
// Example: TXN-1234567890123456789
func (g *ReferenceGenerator) generatePrefixed(prefix string) string {
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), g.snowflake.Generate())
}

// GenerateULID generates a ULID reference (26 characters, sortable).
// Example: 01ARZ3NDEKTSV4RRFFQ69G5FAV
func (g *ReferenceGenerator) GenerateULID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return id.String()
}

// GenerateTransactionRef generates a ledger transaction reference.
// Format: TXN-{SNOWFLAKE}
func (g *ReferenceGenerator) GenerateTransactionRef() string {
	return g.generatePrefixed("TXN")
}

// GenerateWasteRef generates a waste lot reference.
// Format: WST-{SNOWFLAKE}
func (g *ReferenceGenerator) GenerateWasteRef() string {
	return g.generatePrefixed("WST")
}

// GenerateAgentRef generates an agent account reference.
// Format: AGT-{SNOWFLAKE}
func (g *ReferenceGenerator) GenerateAgentRef() string {
	return g.generatePrefixed("AGT")
}

// GenerateCollectionRef generates a collection event reference.
// Format: COL-{ULID}
func (g *ReferenceGenerator) GenerateCollectionRef() string {
	return fmt.Sprintf("COL-%s", g.GenerateULID())
}
