package fair

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"case-engine/internal/model"
)

const (
	// domainTag versions the draw derivation so a future protocol change
	// cannot silently alter the meaning of published seeds.
	domainTag = "case-open/v1"

	serverSeedBytes = 32
	drawPrecision   = 1e8
)

// Engine implements the commit-reveal draw protocol. The optional salt is a
// deployment-wide second entropy source mixed in through an extra hash
// round; it must be published for draws to remain verifiable.
type Engine struct {
	salt string
}

func NewEngine(salt string) *Engine {
	return &Engine{salt: salt}
}

// Commit generates a fresh 256-bit server seed and its SHA-256 commitment.
// The hash is handed to the caller before the draw value is computed.
// A CSPRNG failure fails the whole draw; there is no weaker fallback on a
// money path.
func (e *Engine) Commit() (seed, hash string, err error) {
	var buf [serverSeedBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", "", fmt.Errorf("%w: %v", model.ErrEntropyUnavailable, err)
	}
	seed = hex.EncodeToString(buf[:])
	sum := sha256.Sum256([]byte(seed))
	return seed, hex.EncodeToString(sum[:]), nil
}

// Draw derives the uniform draw value in [0,1) from the seed triple. It is
// pure: identical inputs always produce the identical value, which is what
// makes after-the-fact verification possible.
func (e *Engine) Draw(serverSeed, clientSeed string, nonce int64) float64 {
	payload := fmt.Sprintf("%s|%s|%d|%s", serverSeed, clientSeed, nonce, domainTag)
	digest := sha512.Sum512([]byte(payload))
	if e.salt != "" {
		digest = sha512.Sum512(append(digest[:], []byte(e.salt)...))
	}

	u := binary.BigEndian.Uint64(digest[:8])
	v := float64(u) / float64(math.MaxUint64)
	v = math.Round(v*drawPrecision) / drawPrecision
	// Rounding can land exactly on 1.0; clamp back into [0,1).
	if v >= 1 {
		v = 1 - 1/drawPrecision
	}
	return v
}

// HashSeed returns the SHA-256 commitment for a seed.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes a recorded draw and checks both the seed commitment and
// the stored draw value.
func (e *Engine) Verify(serverSeed, serverSeedHash, clientSeed string, nonce int64, want float64) (float64, bool) {
	if HashSeed(serverSeed) != serverSeedHash {
		return 0, false
	}
	got := e.Draw(serverSeed, clientSeed, nonce)
	return got, got == want
}
