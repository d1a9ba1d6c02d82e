package attendance

import (
	"crypto/rand"
	"regexp"
	"testing"

	"github.com/pkg/errors"
)

var tokenRegex = regexp.MustCompile(`^[a-z2-7]{26}$`)

func TestMakeToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok, err := MakeToken()
		if err != nil {
			t.Fatalf("MakeToken() failed: %v", err)
		}
		if !tokenRegex.MatchString(tok) {
			t.Errorf("MakeToken() = %q, want 26 lowercase base32 chars", tok)
		}
		if _, ok := seen[tok]; ok {
			t.Errorf("MakeToken() repeated %q", tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestMakeTokenRandFailure(t *testing.T) {
	readRandFunc = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }
	defer func() { readRandFunc = rand.Read }()

	if _, err := MakeToken(); err == nil {
		t.Error("MakeToken() expected an error when randomness fails")
	}
}
