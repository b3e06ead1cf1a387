package hrest

import (
	"encoding/json"
	"net/http"
	"time"

	"wastetrade-service/internal/usecase"
	"wastetrade-service/pkg/response"
)

const reportDateLayout = "2006-01-02"

type WasteRestHandler struct {
	wasteUC *usecase.WasteUsecase
}

func NewWasteRestHandler(wasteUC *usecase.WasteUsecase) *WasteRestHandler {
	return &WasteRestHandler{wasteUC: wasteUC}
}

func (h *WasteRestHandler) RegisterWaste(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterWasteRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	waste, err := h.wasteUC.RegisterWasteForSale(r.Context(), in)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, waste)
}

func (h *WasteRestHandler) SellWaste(w http.ResponseWriter, r *http.Request) {
	var in usecase.SellWasteRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	waste, err := h.wasteUC.SellWaste(r.Context(), in)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, waste)
}

type AssignWasteJSON struct {
	WasteID int64 `json:"waste_id"`
	AgentID int64 `json:"agent_id"`
}

func (h *WasteRestHandler) AssignWaste(w http.ResponseWriter, r *http.Request) {
	var in AssignWasteJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.wasteUC.AssignWasteToAgent(r.Context(), in.WasteID, in.AgentID)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *WasteRestHandler) ViewAllWaste(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	wastes, err := h.wasteUC.ViewAllWaste(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, wastes)
}

type CollectWasteJSON struct {
	AgentID       int64   `json:"agent_id"`
	WasteCategory string  `json:"waste_category"`
	WasteWeight   float64 `json:"waste_weight"`
	Username      string  `json:"username"`
}

func (h *WasteRestHandler) CollectWaste(w http.ResponseWriter, r *http.Request) {
	var in CollectWasteJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.wasteUC.CollectWaste(r.Context(), in.AgentID, in.WasteCategory, in.WasteWeight, in.Username)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, result)
}

// GenerateReport handles GET /api/reports/waste?start=2026-01-01&end=2026-01-31
func (h *WasteRestHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(reportDateLayout, r.URL.Query().Get("start"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := time.Parse(reportDateLayout, r.URL.Query().Get("end"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid end date")
		return
	}
	// Make the end date inclusive of the whole day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := h.wasteUC.GenerateWasteReport(r.Context(), start, end)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, report)
}
