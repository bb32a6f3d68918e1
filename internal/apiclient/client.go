// Package apiclient is a thin client for the REST API. It translates the
// wire's "_id" documents back into the domain models.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/common"
	"github.com/ametova/finkeeper/internal/models"
)

// Client talks to one API server. The zero value is not usable; construct
// with New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type wireUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type wireExpense struct {
	ID          string                 `json:"_id"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Category    models.ExpenseCategory `json:"category"`
	Date        string                 `json:"date"`
	IsIncome    bool                   `json:"isIncome"`
}

func (w wireExpense) toModel() (models.Expense, error) {
	date, err := time.Parse(time.RFC3339, w.Date)
	if err != nil {
		date, err = time.Parse("2006-01-02", w.Date)
		if err != nil {
			return models.Expense{}, fmt.Errorf("parsing expense date: %w", err)
		}
	}
	return models.Expense{
		ID:          w.ID,
		Amount:      w.Amount,
		Description: w.Description,
		Category:    w.Category,
		Date:        date,
		IsIncome:    w.IsIncome,
	}, nil
}

type authResult struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	var out authResult
	err := c.call(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &models.Identity{ID: out.User.ID, Email: out.User.Email, Name: out.User.Name}, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Identity, error) {
	var out authResult
	err := c.call(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &models.Identity{ID: out.User.ID, Email: out.User.Email, Name: out.User.Name}, nil
}

// GetExpenses fetches the user's full transaction collection.
func (c *Client) GetExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	var wire []wireExpense
	if err := c.call(ctx, http.MethodGet, "/api/expenses/"+userID, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]models.Expense, 0, len(wire))
	for _, w := range wire {
		e, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// CreateExpense stores a new transaction and returns it with its server-side
// id and date filled in.
func (c *Client) CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	req := wireExpense{
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		IsIncome:    e.IsIncome,
	}
	if !e.Date.IsZero() {
		req.Date = e.Date.Format(time.RFC3339)
	}
	var out wireExpense
	if err := c.call(ctx, http.MethodPost, "/api/expenses", req, &out); err != nil {
		return models.Expense{}, err
	}
	return out.toModel()
}

// UpdateExpense applies a partial update and returns the updated record.
func (c *Client) UpdateExpense(ctx context.Context, id string, patch models.ExpensePatch) (models.Expense, error) {
	var out wireExpense
	if err := c.call(ctx, http.MethodPatch, "/api/expenses/"+id, patch, &out); err != nil {
		return models.Expense{}, err
	}
	return out.toModel()
}

// DeleteExpense removes a transaction.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/expenses/"+id, nil, nil)
}

// call performs one JSON round trip, mapping error statuses onto the shared
// sentinel errors.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrMissingInput
	case http.StatusUnauthorized:
		sentinel = common.ErrInvalidCredentials
	case http.StatusConflict:
		sentinel = common.ErrDuplicateEmail
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Message)
	}
	if payload.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, payload.Message)
	}
	return sentinel
}
