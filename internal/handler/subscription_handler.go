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

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	transactionService  *service.TransactionService
	publisher           websocket.EventPublisher
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(
	subscriptionService *service.SubscriptionService,
	transactionService *service.TransactionService,
	publisher websocket.EventPublisher,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		transactionService:  transactionService,
		publisher:           publisher,
	}
}

// SubscriptionRequest represents the create/update subscription request body
type SubscriptionRequest struct {
	Name            string  `json:"name"`
	Amount          string  `json:"amount"`
	CategoryID      *string `json:"categoryId,omitempty"`
	Cadence         string  `json:"cadence"`
	NextBillingDate string  `json:"nextBillingDate"`
	EndDate         *string `json:"endDate,omitempty"`
	Active          *bool   `json:"active,omitempty"`
	Autopay         bool    `json:"autopay"`
	CustomDays      *int    `json:"customDays,omitempty"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AmountCents     int64   `json:"amountCents"`
	Amount          string  `json:"amount"`
	CategoryID      *string `json:"categoryId,omitempty"`
	Cadence         string  `json:"cadence"`
	NextBillingDate string  `json:"nextBillingDate"`
	EndDate         *string `json:"endDate,omitempty"`
	Active          bool    `json:"active"`
	Autopay         bool    `json:"autopay"`
	CustomDays      *int    `json:"customDays,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// OccurrenceResponse represents one projected billing occurrence
type OccurrenceResponse struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
}

func toSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:              sub.ID.String(),
		Name:            sub.Name,
		AmountCents:     sub.AmountCents,
		Amount:          domain.FormatCents(sub.AmountCents),
		Cadence:         string(sub.Cadence),
		NextBillingDate: sub.NextBillingDate.Format(dateLayout),
		Active:          sub.Active,
		Autopay:         sub.Autopay,
		CustomDays:      sub.CustomDays,
		CreatedAt:       sub.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       sub.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if sub.CategoryID != nil {
		id := sub.CategoryID.String()
		resp.CategoryID = &id
	}
	if sub.EndDate != nil {
		d := sub.EndDate.Format(dateLayout)
		resp.EndDate = &d
	}
	return resp
}

func (h *SubscriptionHandler) parseRequest(c echo.Context, req *SubscriptionRequest) (service.CreateSubscriptionInput, error) {
	var input service.CreateSubscriptionInput

	amountCents, err := domain.ParseAmountCents(req.Amount)
	if err != nil {
		return input, NewValidationError(c, "Invalid amount", []ValidationError{{Field: "amount", Message: "must be a non-negative decimal"}})
	}
	next, err := time.Parse(dateLayout, req.NextBillingDate)
	if err != nil {
		return input, NewValidationError(c, "Invalid nextBillingDate", []ValidationError{{Field: "nextBillingDate", Message: "must be YYYY-MM-DD"}})
	}

	input = service.CreateSubscriptionInput{
		Name:            req.Name,
		AmountCents:     amountCents,
		Cadence:         domain.Cadence(req.Cadence),
		NextBillingDate: next,
		Autopay:         req.Autopay,
		CustomDays:      req.CustomDays,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return input, NewValidationError(c, "Invalid categoryId", nil)
		}
		input.CategoryID = &id
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return input, NewValidationError(c, "Invalid endDate", nil)
		}
		input.EndDate = &end
	}
	return input, nil
}

// CreateSubscription handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, parseErr := h.parseRequest(c, &req)
	if parseErr != nil {
		return parseErr
	}

	sub, err := h.subscriptionService.CreateSubscription(input)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toSubscriptionResponse(sub)
	h.publisher.Publish(websocket.SubscriptionCreated(resp))
	return c.JSON(http.StatusCreated, resp)
}

// GetSubscriptions handles GET /api/v1/subscriptions?active=true
func (h *SubscriptionHandler) GetSubscriptions(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	subs, err := h.subscriptionService.ListSubscriptions(activeOnly)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubscriptionResponse(sub))
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateSubscription handles PUT /api/v1/subscriptions/:id
func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	var req SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	parsed, parseErr := h.parseRequest(c, &req)
	if parseErr != nil {
		return parseErr
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	sub, err := h.subscriptionService.UpdateSubscription(id, service.UpdateSubscriptionInput{
		Name:            parsed.Name,
		AmountCents:     parsed.AmountCents,
		CategoryID:      parsed.CategoryID,
		Cadence:         parsed.Cadence,
		NextBillingDate: parsed.NextBillingDate,
		EndDate:         parsed.EndDate,
		Active:          active,
		Autopay:         parsed.Autopay,
		CustomDays:      parsed.CustomDays,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toSubscriptionResponse(sub)
	h.publisher.Publish(websocket.SubscriptionUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}

// DeleteSubscription handles DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) DeleteSubscription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	if err := h.subscriptionService.DeleteSubscription(id); err != nil {
		return handleDomainError(c, err)
	}

	h.publisher.Publish(websocket.SubscriptionDeleted(map[string]string{"id": id.String()}))
	return c.NoContent(http.StatusNoContent)
}

// GetOccurrences handles GET /api/v1/subscriptions/:id/occurrences?month=YYYY-MM
func (h *SubscriptionHandler) GetOccurrences(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}
	month, err := domain.ParseMonthKey(c.QueryParam("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{{Field: "month", Message: "must be YYYY-MM"}})
	}

	occurrences, err := h.subscriptionService.GetOccurrences(id, month)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := make([]OccurrenceResponse, 0, len(occurrences))
	for _, occ := range occurrences {
		resp = append(resp, OccurrenceResponse{
			Date:        occ.Date.Format(dateLayout),
			AmountCents: occ.AmountCents,
			Amount:      domain.FormatCents(occ.AmountCents),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// PayOccurrenceRequest represents the pay-occurrence request body
type PayOccurrenceRequest struct {
	Date          string  `json:"date"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
}

// PayOccurrence handles POST /api/v1/subscriptions/:id/pay. It materializes
// one billing occurrence as an expense transaction; paying the same
// occurrence twice yields a conflict.
func (h *SubscriptionHandler) PayOccurrence(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	var req PayOccurrenceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{{Field: "date", Message: "must be YYYY-MM-DD"}})
	}

	tx, err := h.transactionService.PayOccurrence(id, date, req.PaymentMethod)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toTransactionResponse(tx)
	h.publisher.Publish(websocket.SubscriptionPaid(resp))
	return c.JSON(http.StatusCreated, resp)
}
