package realtime

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event types
const (
	Insert = "INSERT"
	Update = "UPDATE"
	Delete = "DELETE"
)

// Channel is the pub/sub channel shared by every instance.
const Channel = "tgr:realtime"

// Event one row change delivered to subscribers.
type Event struct {
	Type            string      `json:"type"`
	Table           string      `json:"table"`
	Record          interface{} `json:"record,omitempty"`
	OldRecord       interface{} `json:"old_record,omitempty"`
	CommitTimestamp time.Time   `json:"commit_timestamp"`
}

// EmployeeTopic is the private topic of one employee.
func EmployeeTopic(employeeID int) string {
	return "employee:" + strconv.Itoa(employeeID)
}

// Publisher is what services write change events to.
type Publisher interface {
	// Publish delivers evt to the table topic and every extra topic.
	Publish(ctx context.Context, evt Event, topics ...string)
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event, ...string) {}

// Broker fans events out across instances. *redis.Client satisfies it.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// envelope is the wire form on the broker and the websocket.
type envelope struct {
	Topics []string `json:"topics"`
	Event  Event    `json:"event"`
}

// Hub tracks websocket clients and routes events to them by topic.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broker Broker
	logger *zap.Logger
}

// NewHub creates a hub. broker may be nil for single-instance delivery.
func NewHub(broker Broker, logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		broker:  broker,
		logger:  logger,
	}
}

// Run consumes the broker channel until ctx is cancelled.
// Without a broker it only waits for ctx.
func (h *Hub) Run(ctx context.Context) error {
	if h.broker == nil {
		<-ctx.Done()
		return nil
	}

	msgs, err := h.broker.Subscribe(ctx, Channel)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				h.logger.Warn("discarding malformed realtime message", zap.Error(err))
				continue
			}
			h.deliver(env)
		}
	}
}

// Publish implements Publisher.
func (h *Hub) Publish(ctx context.Context, evt Event, topics ...string) {
	if evt.CommitTimestamp.IsZero() {
		evt.CommitTimestamp = time.Now().UTC()
	}
	env := envelope{Topics: append([]string{evt.Table}, topics...), Event: evt}

	if h.broker != nil {
		raw, err := json.Marshal(env)
		if err == nil {
			if err = h.broker.Publish(ctx, Channel, raw); err == nil {
				return
			}
		}
		h.logger.Warn("realtime broker publish failed, delivering locally",
			zap.String("table", evt.Table), zap.Error(err))
	}
	h.deliver(env)
}

// ClientCount currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
	}
	h.mu.Unlock()
}

func (h *Hub) deliver(env envelope) {
	payload, err := json.Marshal(env.Event)
	if err != nil {
		h.logger.Error("marshal realtime event failed", zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(env.Event.Table, env.Topics) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow realtime client", zap.Int("employee_id", c.employeeID))
		h.unregister(c)
	}
}
