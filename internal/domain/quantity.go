package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MinQuantity is the floor applied to every quantity mutation.
const MinQuantity = 1

// MaxQuantity is the largest quantity a draft can hold.
const MaxQuantity = math.MaxInt32

// QuantityInput is a user-supplied quantity before it is applied to a draft.
// Input that is not a finite number is kept as invalid and leaves the draft unchanged.
type QuantityInput struct {
	value int
	valid bool
}

// QuantityOf wraps an already-numeric quantity. It is clamped on apply.
func QuantityOf(n int) QuantityInput {
	if n > MaxQuantity {
		return QuantityInput{}
	}
	if n < MinQuantity {
		n = MinQuantity
	}
	return QuantityInput{value: n, valid: true}
}

// ParseQuantity accepts the same free text a number input would produce.
// Fractions are truncated, values below 1 become 1.
func ParseQuantity(raw string) QuantityInput {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return QuantityInput{}
	}
	f = math.Trunc(f)
	if f > MaxQuantity {
		return QuantityInput{}
	}
	if f < MinQuantity {
		f = MinQuantity
	}
	return QuantityInput{value: int(f), valid: true}
}

func (q QuantityInput) Valid() bool {
	return q.valid
}

func (q QuantityInput) Value() int {
	return q.value
}

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else decodes to an
// invalid input rather than an error.
func (q *QuantityInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	*q = ParseQuantity(s)
	return nil
}
