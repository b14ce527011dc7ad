package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T, cfg *Config) (*httptest.Server, *Hub) {
	t.Helper()
	hub := NewHub(cfg, nil)
	go hub.Run()
	srv := httptest.NewServer(SetupRoutes(hub, t.TempDir()))
	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return srv, hub
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data interface{}) {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{"t": msgType, "d": data})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// waitForText reads until a JSON message of the wanted type arrives,
// skipping snapshots and unrelated broadcasts.
func waitForText(t *testing.T, conn *websocket.Conn, msgType string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", msgType, err)
		}
		if mt != websocket.TextMessage {
			continue
		}
		var env InEnvelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		if env.T == msgType {
			return env.D
		}
	}
}

func waitForSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for snapshot: %v", err)
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		var snap Snapshot
		if err := msgpack.Unmarshal(data, &snap); err != nil {
			t.Fatalf("snapshot decode: %v", err)
		}
		return snap
	}
}

func TestJoinReceivesWelcomeAndSnapshots(t *testing.T) {
	cfg := DefaultConfig()
	srv, _ := newTestServer(t, cfg)
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgJoin, JoinMsg{Name: "Ace", Mode: "solo"})

	var welcome WelcomeMsg
	if err := json.Unmarshal(waitForText(t, conn, MsgWelcome), &welcome); err != nil {
		t.Fatal(err)
	}
	if welcome.ID == "" || welcome.Team != string(TeamSolo) || welcome.InLobby {
		t.Errorf("welcome = %+v", welcome)
	}

	snap := waitForSnapshot(t, conn)
	if _, ok := snap.Players[welcome.ID]; !ok {
		t.Error("joined player missing from snapshot")
	}
	if len(snap.Obstacles) != cfg.World.ObstacleCount {
		t.Errorf("obstacles = %d, want %d", len(snap.Obstacles), cfg.World.ObstacleCount)
	}
	if !snap.Active {
		t.Error("solo arena should be live")
	}
}

func TestChatBroadcastReachesOtherClients(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())
	c1 := dialWS(t, srv)
	c2 := dialWS(t, srv)

	sendMsg(t, c1, MsgJoin, JoinMsg{Name: "Ace", Mode: "solo"})
	waitForText(t, c1, MsgWelcome)
	sendMsg(t, c2, MsgJoin, JoinMsg{Name: "Bob", Mode: "solo"})
	waitForText(t, c2, MsgWelcome)

	sendMsg(t, c1, MsgChat, ChatMsg{Text: "gg"})

	var cm ChatMessage
	if err := json.Unmarshal(waitForText(t, c2, MsgChatMessage), &cm); err != nil {
		t.Fatal(err)
	}
	if cm.Name != "Ace" || cm.Text != "gg" {
		t.Errorf("chat = %+v", cm)
	}
}

func TestTeamLobbyFlow(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())
	conn := dialWS(t, srv)

	sendMsg(t, conn, MsgJoin, JoinMsg{Name: "Ace", Mode: "team"})

	var welcome WelcomeMsg
	if err := json.Unmarshal(waitForText(t, conn, MsgWelcome), &welcome); err != nil {
		t.Fatal(err)
	}
	if !welcome.InLobby {
		t.Fatal("team joiner should queue in the lobby")
	}

	sendMsg(t, conn, MsgJoinTeam, "red")
	for i := 0; ; i++ {
		var roster []LobbyPlayer
		if err := json.Unmarshal(waitForText(t, conn, MsgLobbyUpdate), &roster); err != nil {
			t.Fatal(err)
		}
		if len(roster) == 1 && roster[0].Team == string(TeamRed) {
			break
		}
		if i > 5 {
			t.Fatalf("team pick never reflected, roster = %+v", roster)
		}
	}

	sendMsg(t, conn, MsgStartMatch, nil)
	waitForText(t, conn, MsgGameStarted)

	snap := waitForSnapshot(t, conn)
	if _, ok := snap.Players[welcome.ID]; !ok {
		t.Error("released player missing from snapshot")
	}
}

func TestQREndpointServesPNG(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())

	resp, err := http.Get(srv.URL + "/qr")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content-type = %s", ct)
	}
}

func TestAdminLoginDisabledByDefault(t *testing.T) {
	srv, _ := newTestServer(t, DefaultConfig())

	body := bytes.NewBufferString(`{"password":"anything"}`)
	resp, err := http.Post(srv.URL+"/admin/login", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminStatsFlow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.AdminPassword = "hunter2"
	srv, _ := newTestServer(t, cfg)

	// Wrong password rejected
	resp, err := http.Post(srv.URL+"/admin/login", "application/json",
		bytes.NewBufferString(`{"password":"wrong"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/admin/login", "application/json",
		bytes.NewBufferString(`{"password":"hunter2"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatal(err)
	}

	// Stats without a token rejected
	resp2, err := http.Get(srv.URL + "/admin/stats")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated stats status = %d", resp2.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp3.StatusCode)
	}
	var stats map[string]interface{}
	if err := json.NewDecoder(resp3.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if _, ok := stats["arena"]; !ok {
		t.Error("stats missing arena summary")
	}
}
