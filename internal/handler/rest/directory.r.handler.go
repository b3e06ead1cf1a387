package hrest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/usecase"
	"wastetrade-service/pkg/response"
)

type DirectoryRestHandler struct {
	agentUC *usecase.AgentUsecase
	userUC  *usecase.UserUsecase
	adminUC *usecase.AdminUsecase
}

func NewDirectoryRestHandler(agentUC *usecase.AgentUsecase, userUC *usecase.UserUsecase, adminUC *usecase.AdminUsecase) *DirectoryRestHandler {
	return &DirectoryRestHandler{
		agentUC: agentUC,
		userUC:  userUC,
		adminUC: adminUC,
	}
}

func (h *DirectoryRestHandler) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.agentUC.RegisterAgent(r.Context(), in)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, agent)
}

func (h *DirectoryRestHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := parseID(chi.URLParam(r, "agentID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	agent, err := h.agentUC.GetAgentByID(r.Context(), agentID)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, agent)
}

func (h *DirectoryRestHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	agents, err := h.agentUC.ListAgents(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, agents)
}

type UpdateAgentProfileJSON struct {
	Email   string          `json:"email"`
	Address *domain.Address `json:"address"`
}

func (h *DirectoryRestHandler) UpdateAgentProfile(w http.ResponseWriter, r *http.Request) {
	var in UpdateAgentProfileJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.agentUC.UpdateAgentProfile(r.Context(), in.Email, in.Address); err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func (h *DirectoryRestHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userUC.RegisterUser(r.Context(), in)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusCreated, user)
}

func (h *DirectoryRestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userUC.GetUserByID(r.Context(), userID)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *DirectoryRestHandler) ManageUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	users, err := h.adminUC.ManageUsers(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, users)
}

func (h *DirectoryRestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.adminUC.DeleteUser(r.Context(), userID); err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

type NotificationJSON struct {
	RecipientEmail string `json:"recipient_email"`
	Title          string `json:"title"`
	Content        string `json:"content"`
}

func (h *DirectoryRestHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var in NotificationJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.adminUC.SendNotification(r.Context(), in.RecipientEmail, in.Title, in.Content)
	if err != nil {
		response.Error(w, statusFromError(err), err.Error())
		return
	}
	response.JSON(w, http.StatusOK, result)
}
