package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"libroconecta/internal/adapter/http/handlers/mocks"
	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newStatusRouter(h *StatusHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/payments/:id/redirect-status", h.RedirectStatus)
	r.GET("/v1/payments/:id/status", h.GetStatus)
	r.GET("/v1/payments/user/:buyer_id", h.ListByBuyer)
	return r
}

func TestStatusHandler_RedirectStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not ready", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().RedirectStatus(gomock.Any(), "tx-1", false).Return(usecase.RedirectStatusView{
			Ready:     false,
			Status:    entities.StatusPending,
			Reference: "LC-1",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/tx-1/redirect-status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["ready"] != false || body["status"] != "pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, ok := body["redirect_url"]; ok {
			t.Fatalf("redirect_url must be omitted when not ready: %s", w.Body.String())
		}
	})

	t.Run("ready with redirect url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().RedirectStatus(gomock.Any(), "tx-1", false).Return(usecase.RedirectStatusView{
			Ready:       true,
			Status:      entities.StatusApproved,
			Reference:   "LC-1",
			RedirectURL: "https://app.test/payments/result?ref=LC-1&status=approved",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/tx-1/redirect-status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["ready"] != true || body["redirect_url"] != "https://app.test/payments/result?ref=LC-1&status=approved" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("by_reference flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().RedirectStatus(gomock.Any(), "LC-1", true).Return(usecase.RedirectStatusView{
			Ready: false, Status: entities.StatusPending, Reference: "LC-1",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/LC-1/redirect-status?by_reference=true", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().RedirectStatus(gomock.Any(), "tx-missing", false).
			Return(usecase.RedirectStatusView{}, usecase.ErrTransactionNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/tx-missing/redirect-status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestStatusHandler_GetStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "tx-1").
			Return(entities.PaymentTransaction{ID: "tx-1", Reference: "LC-1", Status: entities.StatusInProcess}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/tx-1/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "tx-1" || body["status"] != "in_process" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), " ").Return(entities.PaymentTransaction{}, usecase.ErrInvalidTransactionID)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/%20/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestStatusHandler_ListByBuyer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().ListByBuyerID(gomock.Any(), "b1").Return([]entities.PaymentTransaction{
			{ID: "tx-1", BuyerID: "b1", Status: entities.StatusApproved},
			{ID: "tx-2", BuyerID: "b1", Status: entities.StatusPending},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/user/b1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("expected 2 records, got %s", w.Body.String())
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIStatusUseCase(ctrl)
		r := newStatusRouter(NewStatusHandler(uc))

		uc.EXPECT().ListByBuyerID(gomock.Any(), "b1").Return(nil, errors.New("db"))

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/user/b1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
