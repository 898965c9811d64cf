package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return hub
}

func dialGame(t *testing.T, hub *Hub, gameID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		initial, err := EncodeFrame(Frame{Type: FrameTypeState, GameID: gameID})
		if err != nil {
			_ = conn.Close()
			return
		}
		hub.Serve(conn, gameID, initial)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame Frame
	require.NoError(t, sonic.Unmarshal(raw, &frame))
	return frame
}

func TestHub_DeliversOnlyToGameRoom(t *testing.T) {
	hub := startHub(t)
	watcher := dialGame(t, hub, "game-1")
	other := dialGame(t, hub, "game-2")

	require.Equal(t, FrameTypeState, readFrame(t, watcher).Type)
	require.Equal(t, FrameTypeState, readFrame(t, other).Type)
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("game-1") == 1 && hub.SubscriberCount("game-2") == 1
	}, time.Second, 10*time.Millisecond)

	err := hub.PublishGameEvent(context.Background(), usecase.GameEvent{
		GameID:     "game-1",
		Type:       usecase.EventMatchCompleted,
		MatchID:    "match-7",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	frame := readFrame(t, watcher)
	require.Equal(t, FrameTypeEvent, frame.Type)
	require.Equal(t, usecase.EventMatchCompleted, frame.Event)
	require.Equal(t, "match-7", frame.MatchID)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatalf("game-2 subscriber must not receive game-1 events")
	}
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub := startHub(t)
	conn := dialGame(t, hub, "game-1")
	readFrame(t, conn)

	require.Eventually(t, func() bool { return hub.SubscriberCount("game-1") == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.SubscriberCount("game-1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEncodeFrame(t *testing.T) {
	raw, err := EncodeFrame(Frame{Type: FrameTypeEvent, Event: usecase.EventTimerStarted, GameID: "g"})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"event":"timer.started"`)
	require.NotContains(t, string(raw), `"match_id"`)
}
