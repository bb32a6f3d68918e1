package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/auth"
	"github.com/ametova/finkeeper/internal/common"
	"github.com/ametova/finkeeper/internal/expenses"
	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/partition"
)

// wireUser mirrors the web API's user shape.
type wireUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// wireExpense is an expense document as it travels over the wire.
type wireExpense struct {
	ID          string                 `json:"_id"`
	UserID      string                 `json:"userId,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Category    models.ExpenseCategory `json:"category"`
	Date        string                 `json:"date"`
	IsIncome    bool                   `json:"isIncome"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

func toWire(e models.Expense, userID string) wireExpense {
	return wireExpense{
		ID:          e.ID,
		UserID:      userID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.Format(dateLayout),
		IsIncome:    e.IsIncome,
	}
}

func identityToWire(id *models.Identity) wireUser {
	return wireUser{ID: id.ID, Name: id.Name, Email: id.Email}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.sess.CreateAccount(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingInput):
			s.writeError(w, http.StatusBadRequest, "please fill in all fields")
		case errors.Is(err, common.ErrDuplicateEmail):
			s.writeError(w, http.StatusConflict, "user already exists")
		default:
			s.log.Error(r.Context(), "register failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	token, err := auth.GenerateToken(id.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusCreated, authResponse{Token: token, User: identityToWire(id)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.sess.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingInput):
			s.writeError(w, http.StatusBadRequest, "please enter both email and password")
		case errors.Is(err, common.ErrInvalidCredentials):
			s.writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			s.log.Error(r.Context(), "login failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	token, err := auth.GenerateToken(id.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{Token: token, User: identityToWire(id)})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := authUserID(r.Context())
	if mux.Vars(r)["userId"] != userID {
		s.writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	items, _, err := partition.Load[models.Expense](r.Context(), s.kv, expenses.PartitionKey(userID))
	if err != nil {
		s.log.Error(r.Context(), "failed to load expenses", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]wireExpense, 0, len(items))
	for i := range items {
		out = append(out, toWire(items[i], userID))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := authUserID(r.Context())

	var req wireExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Description) == "" || req.Amount.IsZero() {
		s.writeError(w, http.StatusBadRequest, "description and amount are required")
		return
	}
	if !req.IsIncome && !req.Category.Valid() {
		s.writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = parsed
	}

	e := models.Expense{
		ID:          s.newID(),
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Date:        date,
		IsIncome:    req.IsIncome,
	}

	key := expenses.PartitionKey(userID)
	items, _, err := partition.Load[models.Expense](r.Context(), s.kv, key)
	if err == nil {
		items = append(items, e)
		err = partition.Save(r.Context(), s.kv, key, items)
	}
	if err != nil {
		s.log.Error(r.Context(), "failed to save expense", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusCreated, toWire(e, userID))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID := authUserID(r.Context())
	id := mux.Vars(r)["id"]

	var req struct {
		Amount      *decimal.Decimal        `json:"amount"`
		Description *string                 `json:"description"`
		Category    *models.ExpenseCategory `json:"category"`
		Date        *string                 `json:"date"`
		IsIncome    *bool                   `json:"isIncome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := models.ExpensePatch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		IsIncome:    req.IsIncome,
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		patch.Date = &parsed
	}

	key := expenses.PartitionKey(userID)
	items, _, err := partition.Load[models.Expense](r.Context(), s.kv, key)
	if err != nil {
		s.log.Error(r.Context(), "failed to load expenses", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		patch.Apply(&items[i])
		if err := partition.Save(r.Context(), s.kv, key, items); err != nil {
			s.log.Error(r.Context(), "failed to save expense", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.writeJSON(w, http.StatusOK, toWire(items[i], userID))
		return
	}

	s.writeError(w, http.StatusNotFound, "expense not found")
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := authUserID(r.Context())
	id := mux.Vars(r)["id"]

	key := expenses.PartitionKey(userID)
	items, _, err := partition.Load[models.Expense](r.Context(), s.kv, key)
	if err != nil {
		s.log.Error(r.Context(), "failed to load expenses", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		if err := partition.Save(r.Context(), s.kv, key, items); err != nil {
			s.log.Error(r.Context(), "failed to save expenses", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
		return
	}

	s.writeError(w, http.StatusNotFound, "expense not found")
}
