package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"uniconnect/config"
	"uniconnect/internal/auth"
	"uniconnect/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func tokenFrom(c *gin.Context) string {
	if t := c.Query("token"); t != "" {
		return t
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// UpgradeEventsWS streams notification events. Gateway and admin tokens
// subscribe to every user; a user token only to its own user.
func UpgradeEventsWS(cfg *config.JWTConfig, hub *Hub, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.ParseToken(cfg, tokenFrom(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Debug("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		var userID int64
		if claims.Role == domain.RoleUser {
			userID = claims.UserID
		}
		client := NewClient(userID, claims.Role)
		hub.Register(client)
		defer client.Close()

		hello, _ := json.Marshal(map[string]interface{}{"type": "hello", "user_id": userID, "role": claims.Role})
		client.Send <- hello
		log.Info("events subscriber connected", zap.String("subject", claims.Subject), zap.Int64("user_id", userID))
		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies messages from client.Send to the connection.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
