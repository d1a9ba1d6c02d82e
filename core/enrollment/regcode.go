package enrollment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// registration code generation
const maxCodeAttempts = 50

var (
	// ErrCodeSpaceExhausted means maxCodeAttempts consecutive candidates
	// collided; with ~9000 candidates per year that indicates a saturated
	// code space or a misbehaving store, either way an operator problem.
	ErrCodeSpaceExhausted = errors.New("could not find a free registration code")

	codeRand    = rand.New(rand.NewSource(time.Now().UnixNano())) // mockable
	codeNowFunc = time.Now                                        // mockable
)

// ExistsFunc reports whether a candidate registration code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// NewRegistrationCode produces a registration code unique among stored roster
// records at the moment of the check: four random digits plus the current
// year, regenerated on collision. The check-then-insert pattern is advisory —
// two concurrent callers can both pass the check with the same candidate —
// but the candidate space makes that astronomically unlikely and the loop is
// bounded so a pathological store turns into an error, not a hang.
func NewRegistrationCode(ctx context.Context, exists ExistsFunc) (string, error) {
	year := codeNowFunc().Year()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := fmt.Sprintf("%04d%d", 1000+codeRand.Intn(9000), year)

		taken, err := exists(ctx, code)
		if err != nil {
			// Never assume uniqueness on a failed check.
			return "", errors.Wrap(err, "checking registration code uniqueness")
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
