package group

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints. Balance and expense routes
// for a group are registered on the same router by the ledger handler.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{groupId}", h.GetByID)

	// Member management
	r.Post("/{groupId}/members", h.AddMember)
	r.Delete("/{groupId}/members/{userId}", h.RemoveMember)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a new group and add the creator as admin
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "X-User-ID header required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		writeError(w, err, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, g.ToResponse())
}

// GetByID handles GET /groups/{groupId}
// @Summary      Get group by ID
// @Description  Get a group with all its members
// @Tags         groups
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	g, err := h.service.GetByID(r.Context(), chi.URLParam(r, "groupId"), actorID)
	if err != nil {
		writeError(w, err, "Failed to get group")
		return
	}

	response.JSON(w, http.StatusOK, g.ToResponse())
}

// AddMember handles POST /groups/{groupId}/members
// @Summary      Add member to group
// @Description  Add a user to a group. Only admins can add members.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        groupId path string true "Group ID"
// @Param        request body AddMemberRequest true "Member to add"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{groupId}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.AddMember(r.Context(), chi.URLParam(r, "groupId"), actorID, &req)
	if err != nil {
		writeError(w, err, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, g.ToResponse())
}

// RemoveMember handles DELETE /groups/{groupId}/members/{userId}
// @Summary      Remove member from group
// @Tags         groups
// @Param        X-User-ID header string true "Acting user ID"
// @Param        groupId path string true "Group ID"
// @Param        userId path string true "User ID"
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{groupId}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	err := h.service.RemoveMember(r.Context(), chi.URLParam(r, "groupId"), actorID, chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotMember), errors.Is(err, ErrNotAdmin):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrAlreadyMember), errors.Is(err, ErrLastAdmin):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrUnknownUser):
		response.BadRequest(w, err.Error())
	default:
		slog.Error(fallback, "error", err)
		response.InternalError(w, fallback)
	}
}
