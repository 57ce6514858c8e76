package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/towerclimb/internal/config"
	"github.com/lawnchairsociety/towerclimb/internal/engine"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng := engine.New(engine.Options{})
	runner := engine.NewRunner(eng, engine.NewGameState(), time.Hour, nil, nil)
	return New(config.DefaultConfig(), eng, runner)
}

func TestDispatchSetAutoBattle(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.dispatch(ActionMessage{Type: "setAutoBattle", Enabled: false}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if srv.runner.State().AutoBattle {
		t.Error("expected auto battle disabled after action")
	}
}

func TestDispatchBuyMerchantUpgrade(t *testing.T) {
	srv := newTestServer(t)

	srv.runner.Apply(func(g *engine.GameState) *engine.GameState {
		next := g.Clone()
		next.Player.Gold = 1000
		return next
	})

	if err := srv.dispatch(ActionMessage{Type: "buyMerchantUpgrade", Key: "attackBonus"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	state := srv.runner.State()
	if state.Player.Merchant.AttackBonus != 1 {
		t.Errorf("attack bonus level = %d, want 1", state.Player.Merchant.AttackBonus)
	}
	if state.Player.Gold != 0 {
		t.Errorf("gold = %v, want 0", state.Player.Gold)
	}
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.dispatch(ActionMessage{Type: "teleport"}); err == nil {
		t.Error("expected error for unknown action type")
	}
}

func TestDispatchRejectsUnknownUpgradeKey(t *testing.T) {
	srv := newTestServer(t)

	tests := []ActionMessage{
		{Type: "buyMerchantUpgrade", Key: "luck"},
		{Type: "buyMaxMerchantUpgrade", Key: "luck"},
		{Type: "buyReincarnationUpgrade", Key: "luck"},
		{Type: "toggleAutoMerchant", Key: "luck"},
	}

	for _, msg := range tests {
		if err := srv.dispatch(msg); err == nil {
			t.Errorf("dispatch(%s, key=%s) expected error", msg.Type, msg.Key)
		}
	}
}

func TestDispatchSpeedAndPause(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.dispatch(ActionMessage{Type: "setSpeed", Speed: 3}); err != nil {
		t.Fatalf("setSpeed failed: %v", err)
	}
	if srv.runner.Speed() != 3 {
		t.Errorf("speed = %d, want 3", srv.runner.Speed())
	}

	if err := srv.dispatch(ActionMessage{Type: "pause"}); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if !srv.runner.Paused() {
		t.Error("expected runner paused")
	}

	if err := srv.dispatch(ActionMessage{Type: "resume"}); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if srv.runner.Paused() {
		t.Error("expected runner resumed")
	}
}

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", `{"type":"equip","itemId":"abc"}`, false},
		{"missing type", `{"itemId":"abc"}`, true},
		{"garbage", `not json`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAction([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeAction(%q) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotIncludesRunnerControls(t *testing.T) {
	srv := newTestServer(t)
	srv.runner.SetSpeed(2)
	srv.runner.Pause()

	snap := srv.snapshot()
	if snap.Type != "state" {
		t.Errorf("snapshot type = %q, want %q", snap.Type, "state")
	}
	if snap.Speed != 2 {
		t.Errorf("snapshot speed = %d, want 2", snap.Speed)
	}
	if !snap.Paused {
		t.Error("snapshot should report paused")
	}
	if snap.State == nil {
		t.Fatal("snapshot missing state")
	}
}

// readStateMessage reads messages until it sees a state snapshot.
func readStateMessage(t *testing.T, conn *websocket.Conn) StateMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	conn.SetReadDeadline(deadline)

	for time.Now().Before(deadline) {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		var msg StateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "state" {
			return msg
		}
	}
	t.Fatal("no state message received")
	return StateMessage{}
}

func TestWebSocketActionRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	httpServer := httptest.NewServer(http.HandlerFunc(srv.handleWebSocketUpgrade))
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives before any action
	initial := readStateMessage(t, conn)
	if !initial.State.AutoBattle {
		t.Error("fresh state should have auto battle enabled")
	}

	action := `{"type":"setAutoBattle","enabled":false}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(action)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	updated := readStateMessage(t, conn)
	if updated.State.AutoBattle {
		t.Error("expected auto battle disabled in pushed snapshot")
	}
}

func TestWebSocketMalformedActionReturnsError(t *testing.T) {
	srv := newTestServer(t)

	httpServer := httptest.NewServer(http.HandlerFunc(srv.handleWebSocketUpgrade))
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Drain the initial snapshot
	readStateMessage(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg ErrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Type != "error" {
		t.Errorf("message type = %q, want %q", msg.Type, "error")
	}
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		xri      string
		remote   string
		expected string
	}{
		{"direct", "", "", "10.0.0.1:5000", "10.0.0.1"},
		{"forwarded", "203.0.113.7, 10.0.0.2", "", "10.0.0.1:5000", "203.0.113.7"},
		{"real ip header", "", "203.0.113.9", "10.0.0.1:5000", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}

			if got := getRealIP(r); got != tt.expected {
				t.Errorf("getRealIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}
