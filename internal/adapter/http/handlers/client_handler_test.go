package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"climatec_os/internal/adapter/http/handlers/mocks"
	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestClientHandler(t *testing.T) {
	t.Run("list forwards the search term", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.GET("/v1/clients", NewClientHandler(uc).List)

		uc.EXPECT().List(gomock.Any(), "ana").Return([]entities.Client{{ID: "c-1", Name: "Ana"}}, nil)

		w := performRequest(r, http.MethodGet, "/v1/clients?q=ana", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("create reports every violation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/clients", NewClientHandler(uc).Create)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.Client{}, &usecase.ValidationError{Violations: usecase.Violations{"name": "required", "phone": "required"}})

		w := performRequest(r, http.MethodPost, "/v1/clients", `{"name":" "}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		details, _ := body["details"].(map[string]any)
		if body["code"] != "VALIDATION_FAILED" || len(details) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/clients", NewClientHandler(uc).Create)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.ClientInput) (entities.Client, error) {
			if in.Name != "Ana" || in.Email == nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entities.Client{ID: "c-1", Name: in.Name, Phone: in.Phone, Email: in.Email}, nil
		})

		w := performRequest(r, http.MethodPost, "/v1/clients", `{"name":"Ana","phone":"11","email":"ana@example.com"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if decodeBody(t, w)["email"] != "ana@example.com" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.GET("/v1/clients/:id", NewClientHandler(uc).GetByID)

		uc.EXPECT().GetByID(gomock.Any(), "c-9").Return(entities.Client{}, usecase.ErrClientNotFound)

		w := performRequest(r, http.MethodGet, "/v1/clients/c-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("update invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.PUT("/v1/clients/:id", NewClientHandler(uc).Update)

		w := performRequest(r, http.MethodPut, "/v1/clients/c-1", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.DELETE("/v1/clients/:id", NewClientHandler(uc).Delete)

		uc.EXPECT().Delete(gomock.Any(), "c-1").Return(nil)

		w := performRequest(r, http.MethodDelete, "/v1/clients/c-1", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("gateway failure is generic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newTestRouter()
		r.DELETE("/v1/clients/:id", NewClientHandler(uc).Delete)

		uc.EXPECT().Delete(gomock.Any(), "c-1").Return(errors.New("throttled"))

		w := performRequest(r, http.MethodDelete, "/v1/clients/c-1", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if decodeBody(t, w)["message"] != "An internal error occurred" {
			t.Fatalf("cause leaked: %s", w.Body.String())
		}
	})
}

func TestMaterialHandler(t *testing.T) {
	t.Run("create accepts string price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIMaterialUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/materials", NewMaterialHandler(uc).Create)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.MaterialInput) (entities.Material, error) {
			if in.Price.String() != "150.5" {
				t.Fatalf("unexpected price %s", in.Price)
			}
			return entities.Material{ID: "m-1", Name: in.Name, Price: in.Price, Unit: "kg"}, nil
		})

		w := performRequest(r, http.MethodPost, "/v1/materials", `{"name":"Gás R22","price":"150.50","unit":"kg"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if decodeBody(t, w)["price"] != 150.5 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIMaterialUseCase(ctrl)
		r := newTestRouter()
		r.GET("/v1/materials/:id", NewMaterialHandler(uc).GetByID)

		uc.EXPECT().GetByID(gomock.Any(), "m-9").Return(entities.Material{}, usecase.ErrMaterialNotFound)

		w := performRequest(r, http.MethodGet, "/v1/materials/m-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIMaterialUseCase(ctrl)
		r := newTestRouter()
		r.GET("/v1/materials", NewMaterialHandler(uc).List)

		uc.EXPECT().List(gomock.Any(), "gás").Return([]entities.Material{}, nil)

		w := performRequest(r, http.MethodGet, "/v1/materials?q=g%C3%A1s", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
		}
	})
}
