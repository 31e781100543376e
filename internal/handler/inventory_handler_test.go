package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperror"
	"warehouse-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubInventoryService struct {
	products  []service.ProductResponse
	recordErr error
	recorded  *service.RecordTransactionRequest
	userID    string
}

func (s *stubInventoryService) ListProducts(_ context.Context, search string, limit, offset int) ([]service.ProductResponse, int64, error) {
	return s.products, int64(len(s.products)), nil
}

func (s *stubInventoryService) CreateProduct(_ context.Context, userID string, req service.CreateProductRequest) (service.ProductResponse, error) {
	return service.ProductResponse{}, nil
}

func (s *stubInventoryService) UpdateProduct(_ context.Context, userID, id string, req service.UpdateProductRequest) (service.ProductResponse, error) {
	return service.ProductResponse{}, nil
}

func (s *stubInventoryService) DeleteProduct(_ context.Context, userID, id string) error {
	return apperror.NotFound("product not found")
}

func (s *stubInventoryService) RecordTransaction(_ context.Context, userID string, req service.RecordTransactionRequest) (service.TransactionResponse, error) {
	s.userID = userID
	if s.recordErr != nil {
		return service.TransactionResponse{}, s.recordErr
	}
	s.recorded = &req
	return service.TransactionResponse{
		ID:         uuid.NewString(),
		ProductID:  req.ProductID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		StockAfter: 42,
	}, nil
}

func (s *stubInventoryService) ListTransactions(_ context.Context, limit, offset int) ([]service.TransactionResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubInventoryService) GetTransaction(_ context.Context, id string) (service.TransactionResponse, error) {
	return service.TransactionResponse{}, apperror.NotFound("transaction not found")
}

func newTestRouter(svc service.InventoryService) *gin.Engine {
	router := gin.New()
	NewInventoryHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler_test_secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("handler_test_secret"))
	require.NoError(t, err)
	return token
}

func TestListProductsEnvelope(t *testing.T) {
	svc := &stubInventoryService{products: []service.ProductResponse{
		{ID: uuid.NewString(), Code: "P-1", Name: "Widget", CurrentStock: 10, Status: model.StatusAvailable},
	}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Products retrieved successfully", env.Message)
	require.NotNil(t, env.Total)
	assert.Equal(t, int64(1), *env.Total)
}

func TestRecordTransactionRequiresAuth(t *testing.T) {
	router := newTestRouter(&stubInventoryService{})

	body := bytes.NewBufferString(`{"product_id":"x","warehouse_id":"y","type":"IN","quantity":1}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestRecordTransactionCreated(t *testing.T) {
	svc := &stubInventoryService{}
	router := newTestRouter(svc)

	payload, _ := json.Marshal(service.RecordTransactionRequest{
		ProductID:   uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Type:        model.TxTypeIn,
		Quantity:    3,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleStaff))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.recorded)
	assert.Equal(t, 3, svc.recorded.Quantity)
	assert.NotEmpty(t, svc.userID, "user id from the token must reach the service")

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestRecordTransactionInsufficientStock(t *testing.T) {
	svc := &stubInventoryService{recordErr: apperror.Validation("insufficient stock")}
	router := newTestRouter(svc)

	payload, _ := json.Marshal(service.RecordTransactionRequest{
		ProductID:   uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Type:        model.TxTypeOut,
		Quantity:    999,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleStaff))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "insufficient stock", env.Message)
}

func TestDeleteProductRoleGate(t *testing.T) {
	router := newTestRouter(&stubInventoryService{})

	// Staff cannot delete products.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleStaff))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin passes the gate; the stub then reports not found.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/products/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
