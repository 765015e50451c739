package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
	"github.com/davembu/centavo/centavo-backend/internal/websocket"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	publisher          websocket.EventPublisher
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, publisher websocket.EventPublisher) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		publisher:          publisher,
	}
}

// CreateTransactionRequest represents the create transaction request body.
// Amount is a decimal string ("12.34"); it is parsed to integer cents and
// rejected when malformed or negative.
type CreateTransactionRequest struct {
	Type           string  `json:"type"`
	Date           string  `json:"date"`
	Amount         string  `json:"amount"`
	Name           string  `json:"name"`
	CategoryID     *string `json:"categoryId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	PaymentMethod  *string `json:"paymentMethod,omitempty"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
	OccurrenceDate *string `json:"subscriptionOccurrenceDate,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body.
// Absent fields are left unchanged; categoryId set to the empty string
// clears the category.
type UpdateTransactionRequest struct {
	Type          *string `json:"type,omitempty"`
	Date          *string `json:"date,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	Name          *string `json:"name,omitempty"`
	CategoryID    *string `json:"categoryId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Date           string  `json:"date"`
	AmountCents    int64   `json:"amountCents"`
	Amount         string  `json:"amount"`
	Name           string  `json:"name"`
	CategoryID     *string `json:"categoryId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	PaymentMethod  *string `json:"paymentMethod,omitempty"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
	OccurrenceDate *string `json:"subscriptionOccurrenceDate,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            tx.ID.String(),
		Type:          string(tx.Type),
		Date:          tx.Date.Format(dateLayout),
		AmountCents:   tx.AmountCents,
		Amount:        domain.FormatCents(tx.AmountCents),
		Name:          tx.Name,
		Notes:         tx.Notes,
		PaymentMethod: tx.PaymentMethod,
		CreatedAt:     tx.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     tx.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		id := tx.CategoryID.String()
		resp.CategoryID = &id
	}
	if tx.SubscriptionID != nil {
		id := tx.SubscriptionID.String()
		resp.SubscriptionID = &id
	}
	if tx.OccurrenceDate != nil {
		d := tx.OccurrenceDate.Format(dateLayout)
		resp.OccurrenceDate = &d
	}
	return resp
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amountCents, err := domain.ParseAmountCents(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{{Field: "amount", Message: "must be a non-negative decimal"}})
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{{Field: "date", Message: "must be YYYY-MM-DD"}})
	}

	input := service.CreateTransactionInput{
		Type:          domain.TransactionType(req.Type),
		Date:          date,
		AmountCents:   amountCents,
		Name:          req.Name,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId", nil)
		}
		input.CategoryID = &id
	}
	if req.SubscriptionID != nil {
		id, err := uuid.Parse(*req.SubscriptionID)
		if err != nil {
			return NewValidationError(c, "Invalid subscriptionId", nil)
		}
		input.SubscriptionID = &id
	}
	if req.OccurrenceDate != nil {
		occ, err := time.Parse(dateLayout, *req.OccurrenceDate)
		if err != nil {
			return NewValidationError(c, "Invalid subscriptionOccurrenceDate", nil)
		}
		input.OccurrenceDate = &occ
	}

	tx, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toTransactionResponse(tx)
	h.publisher.Publish(websocket.TransactionCreated(resp))
	return c.JSON(http.StatusCreated, resp)
}

// GetTransactions handles GET /api/v1/transactions?month=YYYY-MM
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.QueryParam("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{{Field: "month", Message: "must be YYYY-MM"}})
	}

	transactions, err := h.transactionService.GetByMonth(month)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var patch domain.TransactionPatch
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", nil)
		}
		patch.Date = &date
	}
	if req.Amount != nil {
		amountCents, err := domain.ParseAmountCents(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", nil)
		}
		patch.AmountCents = &amountCents
	}
	patch.Name = req.Name
	patch.Notes = req.Notes
	patch.PaymentMethod = req.PaymentMethod
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			patch.ClearCategory = true
		} else {
			catID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return NewValidationError(c, "Invalid categoryId", nil)
			}
			patch.CategoryID = &catID
		}
	}

	tx, err := h.transactionService.UpdateTransaction(id, patch)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toTransactionResponse(tx)
	h.publisher.Publish(websocket.TransactionUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		return handleDomainError(c, err)
	}

	h.publisher.Publish(websocket.TransactionDeleted(map[string]string{"id": id.String()}))
	return c.NoContent(http.StatusNoContent)
}
