package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type PriceException struct {
	Size  string          `json:"size"`
	Value decimal.Decimal `json:"value"`
}

type PriceExceptions []PriceException

// Equal compares sizes and values element by element.
func (p PriceExceptions) Equal(other PriceExceptions) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Size != other[i].Size || !p[i].Value.Equal(other[i].Value) {
			return false
		}
	}
	return true
}

// DuplicateSize returns the first size present more than once.
func (p PriceExceptions) DuplicateSize() (string, bool) {
	seen := make(map[string]struct{}, len(p))
	for _, e := range p {
		if _, ok := seen[e.Size]; ok {
			return e.Size, true
		}
		seen[e.Size] = struct{}{}
	}
	return "", false
}

func (p PriceExceptions) Clone() PriceExceptions {
	if p == nil {
		return nil
	}
	out := make(PriceExceptions, len(p))
	copy(out, p)
	return out
}

func (p PriceExceptions) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *PriceExceptions) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("price exceptions: unsupported scan type %T", src)
	}
	return json.Unmarshal(data, p)
}
