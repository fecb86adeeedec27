package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"climatec_os/internal/domain/pricing"
)

// Quantity accepts a JSON number or string. Numbers keep their integer part
// (1e3 -> 1000, 3.7 -> 3); strings keep their leading integer. Anything
// unreadable becomes 0, the same as a blank quantity field. Out-of-range values
// are kept so the use case can reject them.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(pricing.CoerceQuantity(s))
		return nil
	}

	f, err := json.Number(data).Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		*q = 0
		return nil
	}
	switch {
	case math.IsNaN(f) || f <= 0:
		*q = 0
	case f >= float64(math.MaxInt):
		*q = Quantity(math.MaxInt)
	default:
		*q = Quantity(int(f))
	}
	return nil
}

func (q Quantity) Int() int { return int(q) }
