package usecase

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"wastetrade-service/internal/domain"
)

type WSMessage struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Notifier pushes balance updates to connected websocket clients.
type Notifier struct {
	clients map[int64]map[*websocket.Conn]bool
	mu      sync.Mutex
}

func NewNotifier() *Notifier {
	return &Notifier{
		clients: make(map[int64]map[*websocket.Conn]bool),
	}
}

func (n *Notifier) RegisterConnection(userID int64, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.clients[userID] == nil {
		n.clients[userID] = make(map[*websocket.Conn]bool)
	}
	n.clients[userID][conn] = true
}

func (n *Notifier) UnregisterConnection(userID int64, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if conns, ok := n.clients[userID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(n.clients, userID)
		}
	}
}

func (n *Notifier) NotifyBalance(userID int64, balance decimal.Decimal, record *domain.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()

	message := WSMessage{
		Type: "balance_update",
		Data: map[string]interface{}{
			"user_id": userID,
			"balance": balance.String(),
			"transaction": map[string]interface{}{
				"reference": record.Reference,
				"plan_type": record.PlanType,
				"amount":    record.Amount.String(),
			},
		},
	}

	payload, _ := json.Marshal(message)

	for conn := range n.clients[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error sending balance to %d: %v", userID, err)
			conn.Close()
			delete(n.clients[userID], conn)
		}
	}
}

func (n *Notifier) NotifyInitial(userID int64, balance decimal.Decimal) {
	n.mu.Lock()
	defer n.mu.Unlock()

	message := WSMessage{
		Type: "initial_data",
		Data: map[string]interface{}{
			"user_id": userID,
			"balance": balance.String(),
		},
	}

	payload, _ := json.Marshal(message)

	for conn := range n.clients[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error sending initial data to %d: %v", userID, err)
			conn.Close()
			delete(n.clients[userID], conn)
		}
	}
}
