package services

import (
	"sync"
	"time"

	"sklad-backend/models"
	"sklad-backend/utils"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// StockEvent представляет событие, рассылаемое подключенным дашбордам
type StockEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client представляет подключенного клиента
type Client struct {
	Conn *websocket.Conn
	Send chan StockEvent
	Hub  *Hub
}

// Hub управляет всеми подключениями и рассылает события об изменении остатков
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan StockEvent
	mutex      sync.RWMutex
	logger     *zap.Logger
}

// NewHub создает новый хаб
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan StockEvent),
		logger:     logger,
	}
}

// Run запускает хаб
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Клиент подключился", zap.Int("total", total))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Клиент отключился", zap.Int("total", total))

		case event := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastStockUpdate рассылает обновленную запись остатка всем клиентам
func (h *Hub) BroadcastStockUpdate(view models.StockView) {
	h.broadcast <- StockEvent{
		Type:    "stock_updated",
		Payload: view,
	}
}

// HandleWebSocket обрабатывает WebSocket соединение.
// Токен администратора передается query-параметром token.
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	claims, err := utils.ValidateJWT(tokenString)
	if err != nil || claims.Role != "admin" {
		c.Close()
		return
	}

	client := &Client{
		Conn: c,
		Send: make(chan StockEvent, 256),
		Hub:  h,
	}

	h.register <- client

	go client.writePump()
	// Читаем в текущей горутине: выход из обработчика закрывает соединение
	client.readPump()
}

// readPump читает входящие сообщения до закрытия соединения.
// Клиенты ничего не присылают, цикл нужен для обнаружения разрыва.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump записывает события в WebSocket
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
