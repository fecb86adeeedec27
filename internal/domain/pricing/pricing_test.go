package pricing

import (
	"errors"
	"math"
	"testing"

	"climatec_os/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func material(id, price string) entities.Material {
	return entities.Material{ID: id, Name: "mat " + id, Price: dec(price), Unit: "unidade"}
}

func TestCoerceQuantity(t *testing.T) {
	cases := map[string]int{
		"3":                       3,
		" 12 ":                    12,
		"3.7":                     3,
		"12un":                    12,
		"+4":                      4,
		"":                        0,
		"abc":                     0,
		"-2":                      0,
		"0":                       0,
		"999999":                  999999,
		"2000000":                 2000000,
		"99999999999999999999999": math.MaxInt,
	}
	for in, want := range cases {
		if got := CoerceQuantity(in); got != want {
			t.Fatalf("CoerceQuantity(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCheckQuantity(t *testing.T) {
	if err := CheckQuantity(MaxQuantity); err != nil {
		t.Fatalf("limit itself must be accepted: %v", err)
	}
	if err := CheckQuantity(MaxQuantity + 1); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
	}

	lines, _ := AddLine(nil, entities.Material{ID: "m-1", Price: dec("2.50")})
	out, err := SetQuantity(lines, 0, MaxQuantity+1)
	if !errors.Is(err, ErrQuantityTooLarge) || out[0].Quantity != 1 {
		t.Fatalf("expected rejected change with input untouched, got %+v err=%v", out, err)
	}
}

func TestLineSubtotal(t *testing.T) {
	prices := []string{"0", "8", "45.5", "150.00", "0.01"}
	for _, p := range prices {
		for q := 0; q <= 25; q++ {
			line := entities.MaterialLine{UnitPrice: dec(p), Quantity: q}
			want := dec(p).Mul(decimal.NewFromInt(int64(q)))
			if got := LineSubtotal(line); !got.Equal(want) {
				t.Fatalf("price %s qty %d: got %s want %s", p, q, got, want)
			}
		}
	}

	negative := entities.MaterialLine{UnitPrice: dec("10"), Quantity: -3}
	if !LineSubtotal(negative).IsZero() {
		t.Fatalf("negative quantity must count as zero")
	}
}

func TestOrderTotal(t *testing.T) {
	lines := []entities.MaterialLine{
		{UnitPrice: dec("150"), Quantity: 2},
		{UnitPrice: dec("25"), Quantity: 1},
	}
	if got := OrderTotal(lines, dec("80")); !got.Equal(dec("405")) {
		t.Fatalf("expected 405, got %s", got)
	}
	if got := OrderTotal(lines, dec("-10")); !got.Equal(dec("325")) {
		t.Fatalf("negative labor must be ignored, got %s", got)
	}
	if got := OrderTotal(nil, decimal.Zero); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestAddLine(t *testing.T) {
	lines, err := AddLine(nil, material("m1", "150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 || !lines[0].Subtotal.Equal(dec("150")) {
		t.Fatalf("unexpected line: %+v", lines)
	}

	lines, err = AddLine(lines, material("m2", "25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("duplicate rejected and list unchanged", func(t *testing.T) {
		before := append([]entities.MaterialLine(nil), lines...)
		got, err := AddLine(lines, material("m1", "999"))
		if !errors.Is(err, ErrDuplicateMaterial) {
			t.Fatalf("expected ErrDuplicateMaterial, got %v", err)
		}
		if len(got) != len(before) {
			t.Fatalf("list length changed: %d", len(got))
		}
		for i := range before {
			if got[i].MaterialID != before[i].MaterialID || !got[i].Subtotal.Equal(before[i].Subtotal) || got[i].Quantity != before[i].Quantity {
				t.Fatalf("line %d changed: %+v", i, got[i])
			}
		}
	})

	t.Run("catalog edits do not change existing lines", func(t *testing.T) {
		m := material("m3", "10")
		withM3, _ := AddLine(lines, m)
		m.Price = dec("99")
		if !withM3[2].UnitPrice.Equal(dec("10")) {
			t.Fatalf("unit price snapshot changed: %s", withM3[2].UnitPrice)
		}
	})
}

func TestRemoveLine(t *testing.T) {
	lines := Normalize([]entities.MaterialLine{
		{MaterialID: "a", UnitPrice: dec("1"), Quantity: 1},
		{MaterialID: "b", UnitPrice: dec("2"), Quantity: 2},
		{MaterialID: "c", UnitPrice: dec("3"), Quantity: 3},
	})

	got, err := RemoveLine(lines, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].MaterialID != "a" || got[1].MaterialID != "c" {
		t.Fatalf("unexpected lines: %+v", got)
	}
	if !got[0].Subtotal.Equal(dec("1")) || !got[1].Subtotal.Equal(dec("9")) {
		t.Fatalf("other subtotals changed: %+v", got)
	}
	if len(lines) != 3 {
		t.Fatalf("input mutated")
	}

	for _, i := range []int{-1, 3} {
		if _, err := RemoveLine(lines, i); !errors.Is(err, ErrLineIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrLineIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	lines := Normalize([]entities.MaterialLine{
		{MaterialID: "a", UnitPrice: dec("10"), Quantity: 1},
		{MaterialID: "b", UnitPrice: dec("2.5"), Quantity: 2},
	})

	got, err := SetQuantity(lines, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[1].Subtotal.Equal(dec("10")) || got[1].Quantity != 4 {
		t.Fatalf("unexpected line: %+v", got[1])
	}
	if !got[0].Subtotal.Equal(dec("10")) || got[0].Quantity != 1 {
		t.Fatalf("other line touched: %+v", got[0])
	}
	if lines[1].Quantity != 2 {
		t.Fatalf("input mutated")
	}

	got, _ = SetQuantity(lines, 0, -5)
	if got[0].Quantity != 0 || !got[0].Subtotal.IsZero() {
		t.Fatalf("negative quantity must clamp to zero: %+v", got[0])
	}

	if _, err := SetQuantity(lines, 2, 1); !errors.Is(err, ErrLineIndexOutOfRange) {
		t.Fatalf("expected ErrLineIndexOutOfRange, got %v", err)
	}
}

func TestTotalHoldsAfterEdits(t *testing.T) {
	labor := dec("120")
	var lines []entities.MaterialLine
	lines, _ = AddLine(lines, material("a", "150"))
	lines, _ = AddLine(lines, material("b", "25"))
	lines, _ = AddLine(lines, material("c", "8"))
	lines, _ = SetQuantity(lines, 0, 3)
	lines, _ = SetQuantity(lines, 2, 10)
	lines, _ = RemoveLine(lines, 1)
	lines, _ = AddLine(lines, material("b", "25"))

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal)
	}
	want := sum.Add(labor)

	if got := OrderTotal(lines, labor); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := OrderTotal(Normalize(lines), labor); !got.Equal(want) {
		t.Fatalf("recomputation not idempotent: %s", got)
	}
	if !want.Equal(dec("675")) {
		t.Fatalf("expected 450+80+25+120=675, got %s", want)
	}
}

func TestNormalize(t *testing.T) {
	lines := []entities.MaterialLine{
		{MaterialID: "a", UnitPrice: dec("10"), Quantity: 2, Subtotal: dec("999")},
		{MaterialID: "b", UnitPrice: dec("3"), Quantity: -1, Subtotal: dec("5")},
	}
	got := Normalize(lines)
	if !got[0].Subtotal.Equal(dec("20")) {
		t.Fatalf("stale subtotal kept: %s", got[0].Subtotal)
	}
	if got[1].Quantity != 0 || !got[1].Subtotal.IsZero() {
		t.Fatalf("negative quantity not clamped: %+v", got[1])
	}
}

func TestFirstDuplicate(t *testing.T) {
	if _, ok := FirstDuplicate([]entities.MaterialLine{{MaterialID: "a"}, {MaterialID: "b"}}); ok {
		t.Fatalf("no duplicates expected")
	}
	id, ok := FirstDuplicate([]entities.MaterialLine{{MaterialID: "a"}, {MaterialID: "b"}, {MaterialID: "a"}})
	if !ok || id != "a" {
		t.Fatalf("expected duplicate a, got %q %v", id, ok)
	}
}
