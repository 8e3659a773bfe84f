package feed

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"case-engine/internal/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpening(roundKey string) *model.CaseOpening {
	return &model.CaseOpening{
		RoundKey:  roundKey,
		UserID:    1,
		CaseID:    7,
		SymbolID:  1,
		Winnings:  50,
		CreatedAt: time.Now(),
	}
}

func testSymbol() model.Symbol {
	return model.Symbol{ID: 1, Name: "Rusty Knife", Rarity: model.RarityCommon, Value: 50}
}

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestBroadcastOpening_DeliversDrop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.BroadcastOpening(testOpening("round-1"), testSymbol(), "Starter Case")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var drop Drop
	require.NoError(t, conn.ReadJSON(&drop))

	assert.Equal(t, "round-1", drop.RoundKey)
	assert.Equal(t, "Starter Case", drop.CaseName)
	assert.Equal(t, "Rusty Knife", drop.SymbolName)
	assert.Equal(t, int64(50), drop.Winnings)
	assert.False(t, drop.IsPity)
}

// Openings settle on concurrent requests, so broadcasts arrive from many
// goroutines at once. Every write to a connection must go through its
// single write pump; this fails under the race detector if two broadcasts
// ever touch the same connection concurrently.
func TestBroadcastOpening_ConcurrentBroadcastsAreSerialized(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	const goroutines = 4
	const perGoroutine = 8

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				key := fmt.Sprintf("round-%d-%d", g, i)
				hub.BroadcastOpening(testOpening(key), testSymbol(), "Starter Case")
			}
		}(g)
	}
	wg.Wait()

	// Total stays under the send buffer, so nothing may be dropped even if
	// the pump lags behind the enqueues.
	seen := make(map[string]bool)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < goroutines*perGoroutine; i++ {
		var drop Drop
		require.NoError(t, conn.ReadJSON(&drop))
		assert.False(t, seen[drop.RoundKey], "duplicate drop %s", drop.RoundKey)
		seen[drop.RoundKey] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestBroadcastOpening_DisconnectedClientIsForgotten(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	conn.Close()

	// The read loop notices the close and unregisters the client; further
	// broadcasts must not block or panic.
	assert.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 0
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastOpening(testOpening("round-after-close"), testSymbol(), "Starter Case")
}
