package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uniconnect/config"
	"uniconnect/internal/auth"
	"uniconnect/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, c *Client) map[string]interface{} {
	t.Helper()
	select {
	case data := <-c.Send:
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	case <-time.After(time.Second):
		t.Fatal("no message")
		return nil
	}
}

func TestBroadcastToUser(t *testing.T) {
	h := NewHub()
	alice := NewClient(1, domain.RoleUser)
	bob := NewClient(2, domain.RoleUser)
	gateway := NewClient(0, domain.RoleGateway)
	h.Register(alice)
	h.Register(bob)
	h.Register(gateway)
	assert.Equal(t, 3, h.ClientCount())

	h.BroadcastToUser(1, map[string]interface{}{"type": "notification", "user_id": 1})
	assert.Equal(t, "notification", receive(t, alice)["type"])
	assert.Equal(t, float64(1), receive(t, gateway)["user_id"])
	assert.Empty(t, bob.Send)

	bob.Close()
	bob.Close()
	assert.Equal(t, 2, h.ClientCount())
	h.BroadcastToUser(2, map[string]string{"type": "x"})
	assert.Equal(t, "x", receive(t, gateway)["type"])
}

func TestBroadcastSkipsClosedClients(t *testing.T) {
	h := NewHub()
	c := NewClient(5, domain.RoleUser)
	h.Register(c)
	c.Close()
	assert.NotPanics(t, func() { send([]*Client{c}, []byte("{}")) })
}

func TestEventsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.JWTConfig{Secret: "s", Expiry: time.Hour, Issuer: "test"}
	hub := NewHub()
	r := gin.New()
	r.GET("/ws/events", UpgradeEventsWS(cfg, hub, zap.NewNop()))
	srv := httptest.NewServer(r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	tok, err := auth.GenerateToken(cfg, "gw", domain.RoleGateway, 0, 0)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+tok, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var hello map[string]interface{}
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello["type"])

	hub.BroadcastToUser(9, map[string]interface{}{"type": "notification", "user_id": 9})
	var ev map[string]interface{}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, float64(9), ev["user_id"])
}
