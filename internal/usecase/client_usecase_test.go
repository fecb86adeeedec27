package usecase

import (
	"context"
	"errors"
	"testing"

	"climatec_os/internal/domain/entities"
	mock_interfaces "climatec_os/internal/usecase/interfaces/mocks"

	"github.com/juju/clock/testclock"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func TestClientUseCase_Create(t *testing.T) {
	t.Run("required fields", func(t *testing.T) {
		uc := NewClientUseCase(nil, nil)
		_, err := uc.Create(context.Background(), ClientInput{Name: "  ", Phone: ""})
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if verr.Violations["name"] != "required" || verr.Violations["phone"] != "required" {
			t.Fatalf("unexpected violations: %+v", verr.Violations)
		}
	})

	t.Run("success normalizes optional fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, testclock.NewClock(testNow))

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Client{})).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				if c.ID == "" || c.Name != "Ana Souza" || c.Phone != "11 99999-0000" {
					t.Fatalf("unexpected client: %+v", c)
				}
				if c.Email == nil || *c.Email != "ana@example.com" || c.Address != nil {
					t.Fatalf("unexpected optional fields: %+v", c)
				}
				if !c.CreatedAt.Equal(testNow) || !c.UpdatedAt.Equal(testNow) {
					t.Fatalf("expected clock timestamps")
				}
				return c, nil
			},
		)

		_, err := uc.Create(context.Background(), ClientInput{
			Name:    " Ana Souza ",
			Phone:   "11 99999-0000",
			Email:   strPtr(" ana@example.com "),
			Address: strPtr("   "),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Client{}, errors.New("db"))

		_, err := uc.Create(context.Background(), ClientInput{Name: "Ana", Phone: "1"})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestClientUseCase_Update(t *testing.T) {
	created := testNow.AddDate(0, -1, 0)

	t.Run("invalid id", func(t *testing.T) {
		uc := NewClientUseCase(nil, nil)
		if _, err := uc.Update(context.Background(), "", ClientInput{Name: "a", Phone: "b"}); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{}, nil)

		if _, err := uc.Update(context.Background(), "c-1", ClientInput{Name: "a", Phone: "b"}); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("deleted meanwhile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Client{}, nil)

		if _, err := uc.Update(context.Background(), "c-1", ClientInput{Name: "a", Phone: "b"}); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("keeps created_at", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, testclock.NewClock(testNow))
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1", Name: "Old", CreatedAt: created, Notes: strPtr("x")}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				if c.Name != "New" || !c.CreatedAt.Equal(created) || !c.UpdatedAt.Equal(testNow) || c.Notes != nil {
					t.Fatalf("unexpected client: %+v", c)
				}
				return c, nil
			},
		)

		if _, err := uc.Update(context.Background(), "c-1", ClientInput{Name: "New", Phone: "1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClientUseCase_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{}, nil)

		if err := uc.Delete(context.Background(), "c-1"); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), "c-1").Return(nil)

		if err := uc.Delete(context.Background(), " c-1 "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClientUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIClientRepository(ctrl)
	uc := NewClientUseCase(repo, nil)
	repo.EXPECT().List(gomock.Any()).Return([]entities.Client{
		{ID: "1", Name: "carlos", Phone: "3333"},
		{ID: "2", Name: "Ana", Phone: "1111", Email: strPtr("ana@climatec.com")},
		{ID: "3", Name: "Bruno", Phone: "2222", Email: strPtr("bruno@climatec.com")},
	}, nil).Times(2)

	all, err := uc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Ana" || all[2].Name != "carlos" {
		t.Fatalf("expected case-insensitive name order, got %+v", all)
	}

	matched, err := uc.List(context.Background(), "CLIMATEC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches by email, got %+v", matched)
	}
}
