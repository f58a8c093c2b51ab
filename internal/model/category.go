package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Goods categories as stored on Good.Category.
const (
	CategoryJackets   = "Kurtki kożuchy futra"
	CategoryBags      = "Torebki"
	CategoryWallets   = "Portfele"
	CategoryRemaining = "Pozostały asortyment"
)

// IsBagLike reports whether goods of category carry a bags/wallets category reference.
func IsBagLike(category string) bool {
	return category == CategoryBags || category == CategoryWallets
}

type SubcategoryTag string

const (
	SubcategoryBelts  SubcategoryTag = "belts"
	SubcategoryGloves SubcategoryTag = "gloves"
)

func (t SubcategoryTag) DisplayName() string {
	switch t {
	case SubcategoryBelts:
		return "Paski"
	case SubcategoryGloves:
		return "Rękawiczki"
	}
	return string(t)
}

// Subcategory is either a reference to a subcategory entity or one of the
// static tags used by remaining assortment goods. At most one side is set.
type Subcategory struct {
	ID  string
	Tag SubcategoryTag
}

func SubcategoryRef(id string) Subcategory {
	return Subcategory{ID: id}
}

func StaticSubcategory(tag SubcategoryTag) Subcategory {
	return Subcategory{Tag: tag}
}

// ParseSubcategory maps the stored string form back to the union.
func ParseSubcategory(s string) Subcategory {
	switch SubcategoryTag(s) {
	case SubcategoryBelts, SubcategoryGloves:
		return Subcategory{Tag: SubcategoryTag(s)}
	}
	return Subcategory{ID: s}
}

func (s Subcategory) IsZero() bool {
	return s.ID == "" && s.Tag == ""
}

func (s Subcategory) IsStatic() bool {
	return s.Tag != ""
}

func (s Subcategory) String() string {
	if s.Tag != "" {
		return string(s.Tag)
	}
	return s.ID
}

func (s Subcategory) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Subcategory) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Subcategory{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("subcategory: %w", err)
	}
	*s = ParseSubcategory(raw)
	return nil
}

func (s Subcategory) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	return s.String(), nil
}

func (s *Subcategory) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Subcategory{}
	case string:
		*s = ParseSubcategory(v)
	case []byte:
		*s = ParseSubcategory(string(v))
	default:
		return fmt.Errorf("subcategory: unsupported scan type %T", src)
	}
	return nil
}
