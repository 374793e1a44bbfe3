package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"hotelcore/services/logger"
	"hotelcore/services/notification"
)

// WebSocketHandler xác thực token (query "token" hoặc header Authorization) rồi
// mở session melody mang userID/role để lọc thông báo.
func WebSocketHandler(m *melody.Melody, secret string, log logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(notification.SessionUserKey)
		log.Debug("websocket connected: %v", userID)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(notification.SessionUserKey)
		log.Debug("websocket disconnected: %v", userID)
	})
	m.HandleError(func(s *melody.Session, err error) {
		log.Warn("websocket error: %v", err)
	})

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = c.GetHeader("Authorization")
		}
		userID, role, err := GetUserFromToken(secret, token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		keys := map[string]interface{}{
			notification.SessionUserKey: userID,
			notification.SessionRoleKey: role,
		}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Warn("websocket upgrade for %s: %v", userID, err)
		}
	}
}
