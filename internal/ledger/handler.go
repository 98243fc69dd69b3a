package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for expenses and balances
type Handler struct {
	service  *Service
	currency string
}

// NewHandler creates a new ledger handler. Requests that omit a currency use
// the ledger's currency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, currency: service.ledger.Currency()}
}

// ExpenseRoutes returns the router for expense endpoints
func (h *Handler) ExpenseRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/preview", h.Preview)
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	// Settlement
	r.Post("/{id}/settle", h.SettleExpense)
	r.Post("/{id}/shares/{userId}/settle", h.SettleShare)

	return r
}

// BalanceRoutes returns the router for balance endpoints
func (h *Handler) BalanceRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Overview)
	r.Get("/{userId}", h.FriendBalance)
	r.Post("/{userId}/settle", h.SettleUp)

	return r
}

// GroupRoutes returns a router with only the group balance endpoints
func (h *Handler) GroupRoutes() chi.Router {
	r := chi.NewRouter()
	h.RegisterGroupRoutes(r)
	return r
}

// RegisterGroupRoutes adds group balance and expense endpoints to an existing
// group router
func (h *Handler) RegisterGroupRoutes(r chi.Router) {
	r.Get("/{groupId}/balances", h.GroupBalance)
	r.Get("/{groupId}/expenses", h.ListByGroup)
}

// Preview handles POST /expenses/preview
// @Summary      Preview a split
// @Description  Compute shares for an expense form without saving it. Shares that do not reconcile are reported with valid=false.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        request body ExpenseRequest true "Expense being edited"
// @Success      200 {object} response.APIResponse{data=PreviewResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	shares, err := h.service.Preview(draft)
	var validationErr *split.ValidationError
	if err != nil && !errors.As(err, &validationErr) {
		writeError(w, err, "Failed to preview expense")
		return
	}

	response.JSON(w, http.StatusOK, toPreviewResponse(shares, validationErr))
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Create an expense with shares computed by the EQUAL, PERCENTAGE or UNEQUAL policy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        request body ExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	e, err := h.service.CreateExpense(r.Context(), draft)
	if err != nil {
		writeError(w, err, "Failed to create expense")
		return
	}

	response.JSON(w, http.StatusCreated, toExpenseResponse(e))
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense with all its shares
// @Tags         expenses
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	e, err := h.service.ViewExpense(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		writeError(w, err, "Failed to get expense")
		return
	}

	response.JSON(w, http.StatusOK, toExpenseResponse(e))
}

// Update handles PUT /expenses/{id}
// @Summary      Edit an expense
// @Description  Recompute an expense from a new request. Every share is replaced and starts unsettled.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        id path string true "Expense ID"
// @Param        request body ExpenseRequest true "Expense edit request"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(r.Context())

	e, err := h.service.EditExpense(r.Context(), chi.URLParam(r, "id"), actorID, draft)
	if err != nil {
		writeError(w, err, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, toExpenseResponse(e))
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Description  Delete an expense (payer only, and only while no one has settled a share)
// @Tags         expenses
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id"), actorID); err != nil {
		writeError(w, err, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// SettleExpense handles POST /expenses/{id}/settle
// @Summary      Settle an expense
// @Description  Payer marks every share of the expense as settled
// @Tags         settlements
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id}/settle [post]
func (h *Handler) SettleExpense(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	e, err := h.service.SettleExpense(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		writeError(w, err, "Failed to settle expense")
		return
	}

	response.JSON(w, http.StatusOK, toExpenseResponse(e))
}

// SettleShare handles POST /expenses/{id}/shares/{userId}/settle
// @Summary      Settle one share
// @Description  Payer or share owner marks a single share as settled
// @Tags         settlements
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        id path string true "Expense ID"
// @Param        userId path string true "Participant whose share is settled"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id}/shares/{userId}/settle [post]
func (h *Handler) SettleShare(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	e, err := h.service.SettleShare(r.Context(), chi.URLParam(r, "id"), actorID, chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err, "Failed to settle share")
		return
	}

	response.JSON(w, http.StatusOK, toExpenseResponse(e))
}

// Overview handles GET /balances
// @Summary      Get all balances
// @Description  Net balance with everyone the acting user shares expenses with
// @Tags         balances
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Success      200 {object} response.APIResponse{data=OverviewResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /balances [get]
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	overview, err := h.service.Overview(r.Context(), actorID)
	if err != nil {
		writeError(w, err, "Failed to get balances")
		return
	}

	response.JSON(w, http.StatusOK, &OverviewResponse{
		Net:      overview.Net.StringFixed(),
		Owed:     overview.Owed.StringFixed(),
		Owing:    overview.Owing.StringFixed(),
		Currency: overview.Net.Currency,
		Display:  balance.Display(overview.Net),
		Balances: toBalanceResponses(overview.Balances),
	})
}

// FriendBalance handles GET /balances/{userId}
// @Summary      Get balance with a user
// @Description  Net balance with one user and a message such as "You owe Bob $15.75"
// @Tags         balances
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        userId path string true "Other user ID"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /balances/{userId} [get]
func (h *Handler) FriendBalance(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	b, err := h.service.FriendBalance(r.Context(), actorID, chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err, "Failed to get balance")
		return
	}

	response.JSON(w, http.StatusOK, toBalanceResponse(b))
}

// SettleUp handles POST /balances/{userId}/settle
// @Summary      Settle up with a user
// @Description  Settle every pending share between the acting user and another user, in both directions
// @Tags         settlements
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        userId path string true "Other user ID"
// @Success      200 {object} response.APIResponse{data=SettleUpResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /balances/{userId}/settle [post]
func (h *Handler) SettleUp(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	result, err := h.service.SettleUp(r.Context(), actorID, chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err, "Failed to settle up")
		return
	}

	response.JSON(w, http.StatusOK, &SettleUpResponse{
		SettledExpenses: len(result.Expenses),
		Settled:         toBalanceResponse(result.Balance),
	})
}

// GroupBalance handles GET /groups/{groupId}/balances
// @Summary      Get group balances
// @Description  The acting user's balance with each member of a group
// @Tags         groups
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalanceResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /groups/{groupId}/balances [get]
func (h *Handler) GroupBalance(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	gb, err := h.service.GroupBalance(r.Context(), actorID, chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err, "Failed to get group balances")
		return
	}

	response.JSON(w, http.StatusOK, &GroupBalanceResponse{
		GroupID:  gb.GroupID,
		Net:      gb.Net.StringFixed(),
		Currency: gb.Net.Currency,
		Display:  balance.Display(gb.Net),
		Balances: toBalanceResponses(gb.Balances),
	})
}

// ListByGroup handles GET /groups/{groupId}/expenses
// @Summary      List expenses by group
// @Description  Get a paginated list of expenses for a group
// @Tags         groups
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID"
// @Param        groupId path string true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /groups/{groupId}/expenses [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, perPage := response.Pagination(r)

	expenses, total, err := h.service.ListGroupExpenses(r.Context(), actorID, chi.URLParam(r, "groupId"), page, perPage)
	if err != nil {
		writeError(w, err, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i := range expenses {
		expenseResponses[i] = toExpenseResponse(&expenses[i])
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, response.NewMeta(page, perPage, total))
}

func (h *Handler) decodeDraft(w http.ResponseWriter, r *http.Request) (Draft, bool) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return Draft{}, false
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return Draft{}, false
	}

	draft, err := req.ToDraft(actorID, h.currency)
	if err != nil {
		writeError(w, err, "Invalid request")
		return Draft{}, false
	}
	return draft, true
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "X-User-ID header required")
		return "", false
	}
	return userID, true
}

// writeError maps service and engine errors onto response envelopes
func writeError(w http.ResponseWriter, err error, fallback string) {
	var invalid *split.InvalidInputError
	var validation *split.ValidationError

	switch {
	case errors.As(err, &invalid):
		response.Error(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.As(err, &validation):
		response.Error(w, http.StatusBadRequest, string(validation.Kind), err.Error())
	case errors.Is(err, expense.ErrExpenseNotFound), errors.Is(err, ErrShareNotFound), errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotPayer), errors.Is(err, ErrNotParticipant), errors.Is(err, ErrNotInvolved), errors.Is(err, group.ErrNotMember):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrCannotDeleteExpense), errors.Is(err, ErrAlreadySettled):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrCannotSettleSelf):
		response.BadRequest(w, err.Error())
	default:
		slog.Error(fallback, "error", err)
		response.InternalError(w, fallback)
	}
}
