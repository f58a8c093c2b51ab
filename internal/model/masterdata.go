package model

type MasterKind string

const (
	KindStock             MasterKind = "stock"
	KindColor             MasterKind = "color"
	KindManufacturer      MasterKind = "manufacturer"
	KindSize              MasterKind = "size"
	KindBelt              MasterKind = "belt"
	KindGlove             MasterKind = "glove"
	KindRemainingProduct  MasterKind = "remaining_product"
	KindSubcategory       MasterKind = "subcategory"
	KindBagsCategory      MasterKind = "bags_category"
	KindWalletsCategory   MasterKind = "wallets_category"
	KindRemainingCategory MasterKind = "remaining_category"
	KindSellingPoint      MasterKind = "selling_point"
)

var MasterKinds = []MasterKind{
	KindStock, KindColor, KindManufacturer, KindSize, KindBelt, KindGlove, KindRemainingProduct,
	KindSubcategory, KindBagsCategory, KindWalletsCategory, KindRemainingCategory, KindSellingPoint,
}

func ParseMasterKind(s string) (MasterKind, bool) {
	for _, k := range MasterKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// MasterEntity is a code/description record. Number is the position used by
// remaining products when deriving barcodes.
type MasterEntity struct {
	BaseModel
	Kind        MasterKind `db:"kind" json:"kind"`
	Code        string     `db:"code" json:"code"`
	Description string     `db:"description" json:"description"`
	Number      int        `db:"number" json:"number,omitempty"`
}

// DisplayName is what selling points and price lists show for the entity.
func (m *MasterEntity) DisplayName() string {
	if m.Description != "" {
		return m.Description
	}
	return m.Code
}
