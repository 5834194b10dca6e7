package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divyde/divyde/internal/adapter/http/dto"
	"github.com/divyde/divyde/internal/adapter/http/middleware"
	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// DebtService defines the behavior needed by DebtHandler.
type DebtService interface {
	ListDebts(ctx context.Context, input usecase.ListDebtsInput) (*usecase.ListDebtsOutput, error)
	CreateSplit(ctx context.Context, input usecase.CreateSplitInput) ([]*domain.Debt, error)
	UpdateDebt(ctx context.Context, input usecase.UpdateDebtInput) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, userID, debtID string) error
}

// DebtHandler handles debt-related HTTP requests.
type DebtHandler struct {
	debtUC DebtService
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtUC DebtService) *DebtHandler {
	return &DebtHandler{debtUC: debtUC}
}

// List lists debts with totals. Supports ?filter=all|outstanding|paid and
// ?friend_id=.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	out, err := h.debtUC.ListDebts(r.Context(), usecase.ListDebtsInput{
		UserID:   userID,
		Filter:   domain.DebtFilter(r.URL.Query().Get("filter")),
		FriendID: r.URL.Query().Get("friend_id"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list debts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDebtsResponse{
		Debts:  dto.DebtsFromDomain(out.Debts),
		Totals: dto.TotalsFromLedger(out.Totals),
	})
}

// Create splits the requested amount across the selected friends, creating
// one debt per friend.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debts, err := h.debtUC.CreateSplit(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create debt", err.Error())
		return
	}

	responses := make([]dto.DebtResponse, len(debts))
	for i, d := range debts {
		responses[i] = dto.DebtFromDomain(*d)
	}

	writeJSON(w, http.StatusCreated, dto.CreateDebtsResponse{
		Count: len(responses),
		Debts: responses,
	})
}

// Update applies a partial update to one debt.
func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debt ID", "")
		return
	}

	var req dto.UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debt, err := h.debtUC.UpdateDebt(r.Context(), req.ToUseCaseInput(userID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update debt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.DebtResponse{
		"debt": dto.DebtFromDomain(*debt),
	})
}

// Delete removes one debt.
func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debt ID", "")
		return
	}

	if err := h.debtUC.DeleteDebt(r.Context(), userID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete debt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
