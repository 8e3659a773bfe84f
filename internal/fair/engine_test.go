package fair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_SeedAndHash(t *testing.T) {
	engine := NewEngine("")

	seed, hash, err := engine.Commit()

	require.NoError(t, err)
	assert.Len(t, seed, 64, "256-bit seed hex encoded")
	assert.Len(t, hash, 64, "sha-256 hex encoded")
	assert.Equal(t, HashSeed(seed), hash)
}

func TestCommit_SeedsAreUnique(t *testing.T) {
	engine := NewEngine("")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seed, _, err := engine.Commit()
		require.NoError(t, err)
		assert.False(t, seen[seed], "seed repeated")
		seen[seed] = true
	}
}

func TestDraw_Deterministic(t *testing.T) {
	engine := NewEngine("")

	a := engine.Draw("server-seed", "client-seed", 1)
	b := engine.Draw("server-seed", "client-seed", 1)

	assert.Equal(t, a, b)
}

func TestDraw_InRange(t *testing.T) {
	engine := NewEngine("some-salt")

	for nonce := int64(0); nonce < 1000; nonce++ {
		v := engine.Draw("server-seed", "client-seed", nonce)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestDraw_NonceChangesValue(t *testing.T) {
	engine := NewEngine("")

	a := engine.Draw("server-seed", "client-seed", 1)
	b := engine.Draw("server-seed", "client-seed", 2)

	assert.NotEqual(t, a, b)
}

func TestDraw_ClientSeedChangesValue(t *testing.T) {
	engine := NewEngine("")

	a := engine.Draw("server-seed", "alpha", 1)
	b := engine.Draw("server-seed", "beta", 1)

	assert.NotEqual(t, a, b)
}

func TestDraw_SaltChangesValue(t *testing.T) {
	plain := NewEngine("")
	salted := NewEngine("deployment-salt")

	a := plain.Draw("server-seed", "client-seed", 1)
	b := salted.Draw("server-seed", "client-seed", 1)

	assert.NotEqual(t, a, b)
}

func TestDraw_RoundedToEightDecimals(t *testing.T) {
	engine := NewEngine("")

	v := engine.Draw("server-seed", "client-seed", 7)
	scaled := v * drawPrecision

	assert.InDelta(t, math.Round(scaled), scaled, 1e-6)
}

func TestVerify_ValidOpening(t *testing.T) {
	engine := NewEngine("salt")

	seed, hash, err := engine.Commit()
	require.NoError(t, err)
	value := engine.Draw(seed, "client-seed", 42)

	computed, valid := engine.Verify(seed, hash, "client-seed", 42, value)

	assert.True(t, valid)
	assert.Equal(t, value, computed)
}

func TestVerify_WrongSeedHash(t *testing.T) {
	engine := NewEngine("")

	seed, _, err := engine.Commit()
	require.NoError(t, err)
	value := engine.Draw(seed, "client-seed", 1)

	computed, valid := engine.Verify(seed, HashSeed("other-seed"), "client-seed", 1, value)

	assert.False(t, valid)
	assert.Zero(t, computed)
}

func TestVerify_TamperedValue(t *testing.T) {
	engine := NewEngine("")

	seed, hash, err := engine.Commit()
	require.NoError(t, err)
	value := engine.Draw(seed, "client-seed", 1)

	_, valid := engine.Verify(seed, hash, "client-seed", 1, value+0.1)

	assert.False(t, valid)
}
