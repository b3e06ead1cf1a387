package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"wastetrade-service/internal/usecase"
	"wastetrade-service/pkg/response"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// BalanceWSHandler streams balance updates for a user over a websocket.
func BalanceWSHandler(ledgerUC *usecase.LedgerUsecase, notifier *usecase.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid user id")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "WebSocket upgrade failed")
			return
		}

		notifier.RegisterConnection(userID, conn)
		defer notifier.UnregisterConnection(userID, conn)

		ctx := r.Context()
		if balance, err := ledgerUC.GetBalance(ctx, userID); err == nil {
			notifier.NotifyInitial(userID, balance)
		} else {
			log.Printf("Error loading balance for %d: %v", userID, err)
		}

		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Client %d disconnected: %v", userID, err)
				break
			}

			if mt == websocket.TextMessage {
				var req struct {
					Action string `json:"action"`
				}
				if err := json.Unmarshal(msg, &req); err == nil && req.Action == "get_balance" {
					if balance, err := ledgerUC.GetBalance(ctx, userID); err == nil {
						notifier.NotifyInitial(userID, balance)
					}
				}
			}
		}
	}
}
