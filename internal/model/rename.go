package model

import (
	"encoding/json"
	"fmt"
)

type RenameType string

const (
	RenameStock            RenameType = "stock"
	RenameColor            RenameType = "color"
	RenameBelt             RenameType = "belt"
	RenameGlove            RenameType = "glove"
	RenameRemainingProduct RenameType = "remainingProduct"
)

// RenameTypeFor maps a master kind to the rename it causes in goods names.
func RenameTypeFor(kind MasterKind) (RenameType, bool) {
	switch kind {
	case KindStock:
		return RenameStock, true
	case KindColor:
		return RenameColor, true
	case KindBelt:
		return RenameBelt, true
	case KindGlove:
		return RenameGlove, true
	case KindRemainingProduct:
		return RenameRemainingProduct, true
	}
	return "", false
}

// FieldType is the goods field holding the renamed reference.
func (t RenameType) FieldType() string {
	switch t {
	case RenameBelt, RenameGlove:
		return "remainingsubsubcategory"
	case RenameRemainingProduct:
		return "bagProduct"
	}
	return string(t)
}

type RenameValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON also accepts a bare string as the name.
func (v *RenameValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*v = RenameValue{Name: name}
		return nil
	}
	type plain RenameValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("rename value: %w", err)
	}
	*v = RenameValue(p)
	return nil
}

// RenameEvent describes a master entity whose display text changed.
type RenameEvent struct {
	Type      RenameType   `json:"type"`
	FieldType string       `json:"fieldType"`
	OldValue  *RenameValue `json:"oldValue"`
	NewValue  *RenameValue `json:"newValue"`
	// UpdatePrices lets the follow-up price list sync copy prices as well.
	UpdatePrices bool `json:"updatePrices,omitempty"`
}

// Actionable reports whether the event carries a real rename.
func (e *RenameEvent) Actionable() bool {
	if e == nil || e.OldValue == nil || e.NewValue == nil {
		return false
	}
	return e.OldValue.Name != "" && e.NewValue.Name != "" && e.OldValue.Name != e.NewValue.Name
}

type RenameResult struct {
	UpdatedCount int          `json:"updatedCount"`
	Type         RenameType   `json:"type"`
	FieldType    string       `json:"fieldType"`
	OldValue     *RenameValue `json:"oldValue"`
	NewValue     *RenameValue `json:"newValue"`
	SyncJobID    string       `json:"syncJobId,omitempty"`
}
