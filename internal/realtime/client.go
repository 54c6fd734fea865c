package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 64
)

// controlMessage is what clients send: {"event":"join","topic":"orders"}.
type controlMessage struct {
	Event string `json:"event"`
	Topic string `json:"topic"`
}

// reply acknowledges a control message.
type reply struct {
	Event  string `json:"event"`
	Topic  string `json:"topic,omitempty"`
	Status string `json:"status"`
}

// Client one websocket subscriber.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	employeeID int
	privileged bool

	mu       sync.RWMutex
	topics   map[string]struct{}
	sendOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, employeeID int, privileged bool) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		employeeID: employeeID,
		privileged: privileged,
		topics:     make(map[string]struct{}),
	}
}

// privateTables carry per-employee data; their events only travel on
// employee topics.
var privateTables = map[string]bool{
	"chat_messages": true,
	"chat_groups":   true,
}

// canJoin employee topics are private to their owner unless privileged;
// see wants for what a privileged client receives there.
func (c *Client) canJoin(topic string) bool {
	if topic == "" || privateTables[topic] {
		return false
	}
	if strings.HasPrefix(topic, "employee:") {
		return c.privileged || topic == EmployeeTopic(c.employeeID)
	}
	return true
}

func (c *Client) join(topic string) bool {
	if !c.canJoin(topic) {
		return false
	}
	c.mu.Lock()
	c.topics[topic] = struct{}{}
	c.mu.Unlock()
	return true
}

func (c *Client) leave(topic string) {
	c.mu.Lock()
	delete(c.topics, topic)
	c.mu.Unlock()
}

// wants reports whether an event published on topics reaches c. Private
// table events only travel on the client's own employee topic, so a
// privileged client watching someone else's topic never sees their chats.
func (c *Client) wants(table string, topics []string) bool {
	own := EmployeeTopic(c.employeeID)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range topics {
		if _, ok := c.topics[t]; !ok {
			continue
		}
		if privateTables[table] && t != own {
			continue
		}
		return true
	}
	return false
}

func (c *Client) closeSend() {
	c.sendOnce.Do(func() { close(c.send) })
}

// Upgrader builds the websocket upgrader for the allowed origins.
// An empty list accepts any origin.
func Upgrader(allowOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowOrigins) == 0 {
				return true
			}
			for _, allowed := range allowOrigins {
				if allowed == "*" || origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// Serve runs an upgraded connection until it closes. The employee's own
// topic is joined automatically.
func (h *Hub) Serve(conn *websocket.Conn, employeeID int, privileged bool) {
	c := newClient(h, conn, employeeID, privileged)
	c.join(EmployeeTopic(employeeID))
	h.register(c)
	metrics.RealtimeClientConnected()

	go c.writePump()
	c.readPump()

	h.unregister(c)
	metrics.RealtimeClientDisconnected()
}

func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("realtime connection error", zap.Int("employee_id", c.employeeID), zap.Error(err))
			}
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(reply{Event: "error", Status: "malformed message"})
			continue
		}
		switch msg.Event {
		case "join":
			if c.join(msg.Topic) {
				c.reply(reply{Event: "join", Topic: msg.Topic, Status: "ok"})
			} else {
				c.reply(reply{Event: "join", Topic: msg.Topic, Status: "forbidden"})
			}
		case "leave":
			c.leave(msg.Topic)
			c.reply(reply{Event: "leave", Topic: msg.Topic, Status: "ok"})
		case "ping":
			c.reply(reply{Event: "pong", Status: "ok"})
		default:
			c.reply(reply{Event: msg.Event, Status: "unknown event"})
		}
	}
}

func (c *Client) reply(r reply) {
	raw, _ := json.Marshal(r)
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
