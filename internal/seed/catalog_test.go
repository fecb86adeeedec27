package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"climatec_os/internal/adapter/http/handlers/mocks"
	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const sampleCatalog = `
materials:
  - name: Gás R22
    price: "150.00"
    unit: kg
  - name: Filtro de Ar
    price: "25.00"
    unit: unidade
`

func TestLoadCatalog(t *testing.T) {
	t.Run("parses exact prices", func(t *testing.T) {
		c, err := LoadCatalog(strings.NewReader(sampleCatalog))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		inputs, err := c.Inputs()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inputs) != 2 || !inputs[0].Price.Equal(decimal.RequireFromString("150")) || inputs[1].Unit != "unidade" {
			t.Fatalf("unexpected inputs: %+v", inputs)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		if _, err := LoadCatalog(strings.NewReader("materials:\n  - name: X\n    cost: 1\n")); err == nil {
			t.Fatalf("expected error for unknown field")
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		c, err := LoadCatalog(strings.NewReader("materials:\n  - name: X\n    price: abc\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.Inputs(); err == nil {
			t.Fatalf("expected invalid price error")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		c, err := LoadCatalog(strings.NewReader(""))
		if err != nil || len(c.Materials) != 0 {
			t.Fatalf("expected empty catalog, got %+v err=%v", c, err)
		}
	})
}

func TestApply(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("skips materials already present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIMaterialUseCase(ctrl)

		uc.EXPECT().List(gomock.Any(), "").Return([]entities.Material{{ID: "m-1", Name: "gás r22"}}, nil)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.MaterialInput) (entities.Material, error) {
			if in.Name != "Filtro de Ar" {
				t.Fatalf("unexpected create: %+v", in)
			}
			return entities.Material{ID: "m-2", Name: in.Name, Price: in.Price, Unit: in.Unit}, nil
		})

		res, err := Apply(context.Background(), uc, c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Created != 1 || res.Skipped != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("stops on create failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIMaterialUseCase(ctrl)

		uc.EXPECT().List(gomock.Any(), "").Return(nil, nil)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Material{}, errors.New("dynamodb down"))

		if _, err := Apply(context.Background(), uc, c); err == nil {
			t.Fatalf("expected error")
		}
	})
}
