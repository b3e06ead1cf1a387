package hrest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"wastetrade-service/internal/usecase"
	"wastetrade-service/pkg/response"
)

type LedgerRestHandler struct {
	ledgerUC *usecase.LedgerUsecase
}

func NewLedgerRestHandler(ledgerUC *usecase.LedgerUsecase) *LedgerRestHandler {
	return &LedgerRestHandler{ledgerUC: ledgerUC}
}

type PaymentJSON struct {
	AdminID int64  `json:"admin_id"`
	UserID  int64  `json:"user_id"`
	Amount  string `json:"amount"`
}

func (h *LedgerRestHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	var in PaymentJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}

	record, err := h.ledgerUC.MakePayment(r.Context(), in.AdminID, in.UserID, amount)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, record)
}

type WithdrawJSON struct {
	UserID int64  `json:"user_id"`
	Amount string `json:"amount"`
}

func (h *LedgerRestHandler) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	var in WithdrawJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}

	record, err := h.ledgerUC.ProcessWithdrawal(r.Context(), in.UserID, amount)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, record)
}

func (h *LedgerRestHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), userID)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"balance": balance.String(),
	})
}

func (h *LedgerRestHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	limit, offset := parsePagination(r)
	transactions, err := h.ledgerUC.ListTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, transactions)
}
