package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/scottfrye/dnd/internal/engine"
	"github.com/scottfrye/dnd/pkg/api"
	"github.com/scottfrye/dnd/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между websocket-соединением и GameService.
// Клиент с токеном управляет сущностью; клиент без токена - наблюдатель,
// он получает все обновления, но его команды отбрасываются.
type Client struct {
	Service  *engine.GameService
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	EntityID string
	observer bool
}

func NewClient(service *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Service: service,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от клиента.
func (c *Client) readPump() {
	defer func() {
		if c.EntityID != "" {
			c.Service.Hub.Unregister(c.EntityID)
			logger.Log.WithField("entity_id", c.EntityID).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket failed")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}

	c.EntityID = loginCmd.Token
	if c.EntityID == "" {
		// Наблюдатель: получает мир, но ничем не управляет.
		c.observer = true
		c.EntityID = fmt.Sprintf("observer_%d", time.Now().UnixNano())
	} else {
		c.Service.JoinPlayer(c.EntityID)
	}

	logger.Log.WithField("entity_id", c.EntityID).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Service.Hub.Register(c.EntityID)

	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// Триггер первой отрисовки
	c.Service.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.EntityID})

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		if c.observer {
			logger.Log.WithField("entity_id", c.EntityID).Debug("Dropped command from observer")
			continue
		}
		cmd.Token = c.EntityID
		c.Service.ProcessCommand(cmd)
	}
}

// writePump отправляет данные клиенту + Ping.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket failed in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
