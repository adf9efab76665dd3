package postgresadapter

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// UUIDGenerator creates UUIDv4 identifiers for registrations.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// RandomCodeGenerator produces the six-digit confirmation codes sent to attendees.
type RandomCodeGenerator struct{}

func (RandomCodeGenerator) NewCode() string {
	return fmt.Sprintf("%06d", rand.IntN(900000)+100000)
}
