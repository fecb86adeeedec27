// Package pricing computes material-line subtotals and order/budget totals.
//
// Every function returns new slices; callers' lines are never mutated, so a
// rejected operation leaves the input exactly as it was.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"climatec_os/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// MaxQuantity bounds a single line. Larger quantities are rejected, never
// clamped, so a stored subtotal is always price times the quantity sent.
const MaxQuantity = 1_000_000

var (
	ErrDuplicateMaterial   = errors.New("material already added to this order")
	ErrLineIndexOutOfRange = errors.New("material line index out of range")
	ErrQuantityTooLarge    = fmt.Errorf("material quantity exceeds %d", MaxQuantity)
)

// CoerceQuantity parses a user-typed quantity. It reads the leading integer
// ("3.7" -> 3, "12un" -> 12); anything non-numeric or negative becomes 0.
// Digits beyond the range of int saturate at math.MaxInt.
func CoerceQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 || negative {
		return 0
	}
	return n
}

// CheckQuantity reports ErrQuantityTooLarge for quantities above MaxQuantity.
func CheckQuantity(q int) error {
	if q > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrQuantityTooLarge, q)
	}
	return nil
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

func LineSubtotal(line entities.MaterialLine) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(clampQuantity(line.Quantity))))
}

func MaterialsTotal(lines []entities.MaterialLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineSubtotal(l))
	}
	return total
}

// OrderTotal is the materials total plus labor; a negative labor cost counts as zero.
func OrderTotal(lines []entities.MaterialLine, laborCost decimal.Decimal) decimal.Decimal {
	if laborCost.IsNegative() {
		laborCost = decimal.Zero
	}
	return MaterialsTotal(lines).Add(laborCost)
}

// NewLine snapshots a catalog material into a line with quantity 1.
func NewLine(m entities.Material) entities.MaterialLine {
	line := entities.MaterialLine{
		MaterialID: m.ID,
		Name:       m.Name,
		Unit:       m.Unit,
		UnitPrice:  m.Price,
		Quantity:   1,
	}
	line.Subtotal = LineSubtotal(line)
	return line
}

func HasMaterial(lines []entities.MaterialLine, materialID string) bool {
	for _, l := range lines {
		if l.MaterialID == materialID {
			return true
		}
	}
	return false
}

// AddLine appends m as a new line. At most one line per material is allowed:
// quantities are never merged.
func AddLine(lines []entities.MaterialLine, m entities.Material) ([]entities.MaterialLine, error) {
	if HasMaterial(lines, m.ID) {
		return lines, ErrDuplicateMaterial
	}
	out := make([]entities.MaterialLine, 0, len(lines)+1)
	out = append(out, lines...)
	return append(out, NewLine(m)), nil
}

// RemoveLine removes the line at index i keeping the order of the others.
func RemoveLine(lines []entities.MaterialLine, i int) ([]entities.MaterialLine, error) {
	if i < 0 || i >= len(lines) {
		return lines, ErrLineIndexOutOfRange
	}
	out := make([]entities.MaterialLine, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	return append(out, lines[i+1:]...), nil
}

// SetQuantity changes the quantity of line i and recomputes only its subtotal.
func SetQuantity(lines []entities.MaterialLine, i, quantity int) ([]entities.MaterialLine, error) {
	if i < 0 || i >= len(lines) {
		return lines, ErrLineIndexOutOfRange
	}
	if err := CheckQuantity(quantity); err != nil {
		return lines, err
	}
	out := make([]entities.MaterialLine, len(lines))
	copy(out, lines)
	out[i].Quantity = clampQuantity(quantity)
	out[i].Subtotal = LineSubtotal(out[i])
	return out, nil
}

// Normalize clamps quantities and recomputes every subtotal. Applied before any
// line list is persisted.
func Normalize(lines []entities.MaterialLine) []entities.MaterialLine {
	out := make([]entities.MaterialLine, len(lines))
	for i, l := range lines {
		l.Quantity = clampQuantity(l.Quantity)
		l.Subtotal = LineSubtotal(l)
		out[i] = l
	}
	return out
}

// FirstDuplicate returns the first material ID appearing in more than one line.
func FirstDuplicate(lines []entities.MaterialLine) (string, bool) {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.MaterialID]; ok {
			return l.MaterialID, true
		}
		seen[l.MaterialID] = struct{}{}
	}
	return "", false
}
