package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunk-2005/chat-app/ws"
)

type onlineUsersEvent struct {
	Op   string   `json:"op"`
	Data []string `json:"d"`
	Seq  int64    `json:"seq"`
}

// newWSTestServer, gerçek bir HTTP server üzerinde /ws endpoint'i açar.
// Testler gerçek handshake yapar — upgrade, query param ve origin kontrolü
// birlikte test edilir.
func newWSTestServer(t *testing.T, allowedOrigins []string) (*ws.Hub, *httptest.Server) {
	t.Helper()

	hub := ws.NewHub()
	go hub.Run()

	handler := ws.NewHandler(hub, allowedOrigins)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.HandleConnection)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Shutdown()
		server.Close()
	})

	return hub, server
}

func dial(t *testing.T, server *httptest.Server, query string, header http.Header) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) onlineUsersEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event onlineUsersEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestHandler_ConnectReceivesOnlineSnapshot(t *testing.T) {
	_, server := newWSTestServer(t, nil)

	alice := dial(t, server, "?userId=alice", nil)
	event := readEvent(t, alice)
	assert.Equal(t, "getOnlineUsers", event.Op)
	assert.ElementsMatch(t, []string{"alice"}, event.Data)

	bob := dial(t, server, "?userId=bob", nil)
	assert.ElementsMatch(t, []string{"alice", "bob"}, readEvent(t, bob).Data)
	// Mevcut bağlantı da güncellenen listeyi alır.
	assert.ElementsMatch(t, []string{"alice", "bob"}, readEvent(t, alice).Data)
}

func TestHandler_DisconnectBroadcasts(t *testing.T) {
	_, server := newWSTestServer(t, nil)

	alice := dial(t, server, "?userId=alice", nil)
	readEvent(t, alice)

	bob := dial(t, server, "?userId=bob", nil)
	readEvent(t, alice)
	readEvent(t, bob)

	require.NoError(t, bob.Close())

	assert.ElementsMatch(t, []string{"alice"}, readEvent(t, alice).Data)
}

// userId'siz handshake: bağlantı kurulur ama presence listesine girmez.
func TestHandler_AnonymousConnectionNotRegistered(t *testing.T) {
	hub, server := newWSTestServer(t, nil)

	anon := dial(t, server, "", nil)

	// Heartbeat gönderilebilir — bağlantı canlı.
	require.NoError(t, anon.WriteJSON(map[string]string{"op": "heartbeat"}))
	event := readEvent(t, anon)
	assert.Equal(t, "heartbeat_ack", event.Op)

	assert.Empty(t, hub.GetOnlineUserIDs())
}

func TestHandler_HeartbeatAck(t *testing.T) {
	_, server := newWSTestServer(t, nil)

	alice := dial(t, server, "?userId=alice", nil)
	readEvent(t, alice)

	require.NoError(t, alice.WriteJSON(map[string]string{"op": "heartbeat"}))
	assert.Equal(t, "heartbeat_ack", readEvent(t, alice).Op)
}

func TestHandler_OriginCheck(t *testing.T) {
	_, server := newWSTestServer(t, []string{"http://allowed.example"})

	// Listede olmayan origin reddedilir.
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?userId=alice"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{
		"Origin": []string{"http://evil.example"},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Listedeki origin kabul edilir.
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{
		"Origin": []string{"http://allowed.example"},
	})
	require.NoError(t, err)
	conn.Close()

	// Origin header'ı olmayan (browser dışı) client da kabul edilir.
	anon := dial(t, server, "?userId=cli", nil)
	anon.Close()
}
