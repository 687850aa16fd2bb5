package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-api/internal/adapter/ordering"
	"user-api/internal/usecase/user"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/response"
)

// clientIPHeader carries the original client IP when the service sits
// behind the CDN; it is forwarded verbatim to the downstream API.
const clientIPHeader = "CF-Connecting-IP"

// UserHandler handles HTTP requests for user operations and bulk orders.
type UserHandler struct {
	uc     user.Usecase
	orders ordering.Gateway
	log    *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(uc user.Usecase, orders ordering.Gateway, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		orders: orders,
		log:    log,
	}
}

// ListUsersData is the data section of the list response envelope.
type ListUsersData struct {
	Data       []user.User     `json:"data"`
	Pagination user.Pagination `json:"pagination"`
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed create user body", zap.Error(err))
		c.JSON(http.StatusBadRequest, response.Error("invalid request body", nil))
		return
	}

	created, err := h.uc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success("user created", created))
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success("user", u))
}

// UpdateUser handles PUT /v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed update user body", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, response.Error("invalid request body", nil))
		return
	}
	req.ID = id

	updated, err := h.uc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success("user updated", updated))
}

// DeleteUser handles DELETE /v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success("user deleted", gin.H{"id": resp.ID}))
}

// ListUsers handles GET /v1/users. Malformed pagination values never fail
// the request; they fall back to the documented defaults.
func (h *UserHandler) ListUsers(c *gin.Context) {
	req := user.ParseListQuery(
		c.Query("page"),
		c.Query("limit"),
		c.Query("keyword"),
	)

	resp, err := h.uc.ListUsers(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success("users", ListUsersData{
		Data:       resp.Users,
		Pagination: *resp.Pagination,
	}))
}

// PlaceOrder handles POST /v1/users/orders. The request body is validated,
// converted into a downstream payload with the caller's client IP and any
// forwarded headers, and submitted to the commerce API.
func (h *UserHandler) PlaceOrder(c *gin.Context) {
	var req ordering.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed order body", zap.Error(err))
		c.JSON(http.StatusBadRequest, response.Error("invalid request body", nil))
		return
	}

	if err := validateOrderRequest(req); err != nil {
		h.handleError(c, err)
		return
	}

	clientIP := c.GetHeader(clientIPHeader)

	payload := h.orders.BuildPayload(req, clientIP, nil)
	result, err := h.orders.Submit(c.Request.Context(), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success("order submitted", result.Response))
}

// validateOrderRequest checks the structural rules of a bulk order,
// reporting every violated field.
func validateOrderRequest(req ordering.OrderRequest) error {
	verr := apperrors.NewValidationError(nil)
	if len(req.VariantIDs) == 0 {
		verr.Add("id_variant", "id_variant must contain at least one entry")
	}
	if len(req.Quantities) == 0 {
		verr.Add("qty", "qty must contain at least one entry")
	}
	if len(req.VariantIDs) > 0 && len(req.Quantities) > 0 && len(req.VariantIDs) != len(req.Quantities) {
		verr.Add("qty", "qty must have the same length as id_variant")
	}
	for _, q := range req.Quantities {
		if q < 0 {
			verr.Add("qty", "qty entries must not be negative")
			break
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// parseID extracts the numeric :id path parameter, responding 400 on junk.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, response.Error("user id must be a valid number", nil))
		return 0, false
	}
	return id, true
}

// handleError translates typed application errors into the envelope with
// the matching HTTP status. Validation errors carry their field map as the
// envelope data so clients see every violation.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(verr.HTTPStatus(), response.Error("validation failed", verr.Fields))
		return
	}

	var extErr *apperrors.ExternalAPIError
	if errors.As(err, &extErr) {
		h.log.Error("downstream api error", zap.Int("downstream_status", extErr.StatusCode), zap.Error(extErr))
		c.JSON(extErr.HTTPStatus(), response.Error("downstream api call failed", gin.H{
			"downstream_status": extErr.StatusCode,
		}))
		return
	}

	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		c.JSON(statuser.HTTPStatus(), response.Error(err.Error(), nil))
		return
	}

	h.log.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, response.Error("an internal error occurred", nil))
}
