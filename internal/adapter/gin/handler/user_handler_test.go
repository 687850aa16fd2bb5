package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-api/internal/adapter/ordering"
	"user-api/internal/usecase/user"
	apperrors "user-api/pkg/errors"
)

// MockUsecase is a mock implementation of the user.Usecase interface
type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) CreateUser(ctx context.Context, in user.CreateUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) UpdateUser(ctx context.Context, in user.UpdateUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) DeleteUser(ctx context.Context, in user.DeleteUserRequest) (*user.DeleteUserResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.DeleteUserResponse), args.Error(1)
}

func (m *MockUsecase) GetUser(ctx context.Context, in user.GetUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) ListUsers(ctx context.Context, in user.ListUsersRequest) (*user.ListUsersResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ListUsersResponse), args.Error(1)
}

// MockGateway is a mock implementation of the ordering.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) BuildPayload(req ordering.OrderRequest, clientIP string, extraHeaders map[string]string) ordering.Payload {
	args := m.Called(req, clientIP, extraHeaders)
	return args.Get(0).(ordering.Payload)
}

func (m *MockGateway) Submit(ctx context.Context, p ordering.Payload) (*ordering.OrderResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.OrderResult), args.Error(1)
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *MockUsecase, *MockGateway) {
	gin.SetMode(gin.TestMode)

	uc := new(MockUsecase)
	gw := new(MockGateway)
	h := NewUserHandler(uc, gw, zaptest.NewLogger(t))

	r := gin.New()
	v1 := r.Group("/v1/users")
	{
		v1.POST("", h.CreateUser)
		v1.GET("", h.ListUsers)
		v1.POST("/orders", h.PlaceOrder)
		v1.GET("/:id", h.GetUser)
		v1.PUT("/:id", h.UpdateUser)
		v1.DELETE("/:id", h.DeleteUser)
	}

	return r, uc, gw
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// ==================== CREATE ====================

func TestCreateUser_Created(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("CreateUser", mock.Anything, user.CreateUserRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	}).Return(&user.User{ID: 1, Name: "John Doe", Email: "john@example.com"}, nil)

	w := doJSON(r, http.MethodPost, "/v1/users",
		`{"name":"John Doe","email":"john@example.com","password":"password123"}`, nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["status"])
	assert.Equal(t, "user created", env["message"])

	data := env["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])
	assert.NotContains(t, data, "password")

	uc.AssertExpectations(t)
}

func TestCreateUser_MalformedBody(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/v1/users", `{"name": "John",`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["status"])

	uc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	verr := apperrors.NewValidationError(nil)
	verr.Add("email", "email must be a valid email")
	verr.Add("password", "password must be at least 6 characters")

	uc.On("CreateUser", mock.Anything, mock.Anything).Return(nil, verr)

	w := doJSON(r, http.MethodPost, "/v1/users",
		`{"name":"John","email":"bad","password":"123"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["status"])
	assert.Equal(t, "validation failed", env["message"])

	data := env["data"].(map[string]any)
	assert.Contains(t, data, "email")
	assert.Contains(t, data, "password")
}

func TestCreateUser_EmailConflict(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAlreadyExistsError("email", "email already exists"))

	w := doJSON(r, http.MethodPost, "/v1/users",
		`{"name":"John","email":"john@example.com","password":"password123"}`, nil)

	assert.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["status"])
	assert.Equal(t, "email already exists", env["message"])
}

// ==================== GET ====================

func TestGetUser_OK(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("GetUser", mock.Anything, user.GetUserRequest{ID: 42}).
		Return(&user.User{ID: 42, Name: "Jane"}, nil)

	w := doJSON(r, http.MethodGet, "/v1/users/42", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["status"])
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(42), data["id"])
}

func TestGetUser_NotFound(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("GetUser", mock.Anything, user.GetUserRequest{ID: 99}).
		Return(nil, apperrors.NewNotFoundError("user", "user not found"))

	w := doJSON(r, http.MethodGet, "/v1/users/99", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["status"])
	assert.Equal(t, "user not found", env["message"])
}

func TestGetUser_NonNumericID(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	w := doJSON(r, http.MethodGet, "/v1/users/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

// ==================== UPDATE ====================

func TestUpdateUser_OK(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("UpdateUser", mock.Anything, user.UpdateUserRequest{ID: 7, Name: "New Name"}).
		Return(&user.User{ID: 7, Name: "New Name"}, nil)

	w := doJSON(r, http.MethodPut, "/v1/users/7", `{"name":"New Name"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "user updated", env["message"])
}

func TestUpdateUser_PathIDWins(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	// id in the body is ignored; the path parameter is authoritative
	uc.On("UpdateUser", mock.Anything, mock.MatchedBy(func(in user.UpdateUserRequest) bool {
		return in.ID == 7
	})).Return(&user.User{ID: 7}, nil)

	w := doJSON(r, http.MethodPut, "/v1/users/7", `{"id":99,"name":"X"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

// ==================== DELETE ====================

func TestDeleteUser_OK(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("DeleteUser", mock.Anything, user.DeleteUserRequest{ID: 3}).
		Return(&user.DeleteUserResponse{ID: 3}, nil)

	w := doJSON(r, http.MethodDelete, "/v1/users/3", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "user deleted", env["message"])
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(3), data["id"])
}

// ==================== LIST ====================

func TestListUsers_DefaultsApplied(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("ListUsers", mock.Anything, user.ListUsersRequest{Page: 1, Limit: 10}).
		Return(&user.ListUsersResponse{
			Users:      []user.User{},
			Pagination: &user.Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0},
		}, nil)

	w := doJSON(r, http.MethodGet, "/v1/users?page=oops&limit=-5", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])

	uc.AssertExpectations(t)
}

func TestListUsers_KeywordAndPaginationForwarded(t *testing.T) {
	r, uc, _ := setupHandlerTest(t)

	uc.On("ListUsers", mock.Anything, user.ListUsersRequest{Keyword: "john", Page: 2, Limit: 5}).
		Return(&user.ListUsersResponse{
			Users:      []user.User{{ID: 6, Name: "John"}},
			Pagination: &user.Pagination{Total: 6, Page: 2, Limit: 5, TotalPages: 2},
		}, nil)

	w := doJSON(r, http.MethodGet, "/v1/users?page=2&limit=5&keyword=john", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	users := data["data"].([]any)
	assert.Len(t, users, 1)

	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(6), pagination["total"])
	assert.Equal(t, float64(2), pagination["total_pages"])
}

// ==================== ORDERS ====================

func TestPlaceOrder_OK(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	payload := ordering.Payload{
		Body:    map[string]any{"token": "t"},
		Headers: map[string]string{"Content-Type": "application/json"},
	}

	gw.On("BuildPayload", mock.MatchedBy(func(req ordering.OrderRequest) bool {
		return len(req.VariantIDs) == 2 && req.GrandTotal == 250000
	}), "203.0.113.9", mock.Anything).Return(payload)
	gw.On("Submit", mock.Anything, payload).
		Return(&ordering.OrderResult{StatusCode: 200, Response: map[string]any{"success": true}}, nil)

	w := doJSON(r, http.MethodPost, "/v1/users/orders",
		`{"id_variant":[101,102],"qty":[1,3],"grand_total":250000}`,
		map[string]string{"CF-Connecting-IP": "203.0.113.9"})

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["status"])
	assert.Equal(t, "order submitted", env["message"])
	data := env["data"].(map[string]any)
	assert.Equal(t, true, data["success"])

	gw.AssertExpectations(t)
}

func TestPlaceOrder_MismatchedSlices(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/v1/users/orders",
		`{"id_variant":[101,102],"qty":[1]}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	assert.Contains(t, data, "qty")

	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPlaceOrder_EmptySlices(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/v1/users/orders",
		`{"id_variant":[],"qty":[]}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	assert.Contains(t, data, "id_variant")
	assert.Contains(t, data, "qty")

	gw.AssertNotCalled(t, "BuildPayload", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_NegativeQuantity(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/v1/users/orders",
		`{"id_variant":[101],"qty":[-1]}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPlaceOrder_DownstreamFailure(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	payload := ordering.Payload{Body: map[string]any{}, Headers: map[string]string{}}

	gw.On("BuildPayload", mock.Anything, mock.Anything, mock.Anything).Return(payload)
	gw.On("Submit", mock.Anything, payload).
		Return(nil, apperrors.NewExternalAPIError(http.StatusForbidden, "invalid csrf token", nil))

	w := doJSON(r, http.MethodPost, "/v1/users/orders",
		`{"id_variant":[101],"qty":[1]}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["status"])
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(http.StatusForbidden), data["downstream_status"])
}

func TestPlaceOrder_MalformedBody(t *testing.T) {
	r, _, gw := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/v1/users/orders", `{"id_variant": [,]}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	gw.AssertNotCalled(t, "BuildPayload", mock.Anything, mock.Anything, mock.Anything)
}
