package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcore/models"
	"hotelcore/services/notification"
)

func TestWebSocketDeliversOnlyOwnEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := melody.New()
	defer m.Close()

	router := gin.New()
	router.GET("/ws", WebSocketHandler(m, "ws-secret", nil))
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := GenerateToken("ws-secret", "guest-1", models.RoleGuest, time.Minute)
	require.NoError(t, err)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 10*time.Millisecond)

	sink := notification.NewMelodyService(m)
	require.NoError(t, sink.Send(models.Notification{
		Event:   models.EventBookingConfirmed,
		Payload: models.EventPayload{BookingID: "other", GuestID: "guest-2", ActorID: "staff"},
	}))
	require.NoError(t, sink.Send(models.Notification{
		Event:   models.EventBookingConfirmed,
		Payload: models.EventPayload{BookingID: "mine", GuestID: "guest-1", ActorID: "staff"},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var got models.Notification
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "mine", got.Payload.BookingID)
}
