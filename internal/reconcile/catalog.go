package reconcile

import (
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

// Catalog is the live state a price list is reconciled against: the goods,
// the master entities they reference, and optionally a subset of goods the
// pass is limited to.
type Catalog struct {
	goods   map[string]*model.Good
	order   []string
	masters map[string]*model.MasterEntity
	scope   map[string]struct{}
}

func NewCatalog(goods []model.Good, masters []model.MasterEntity) *Catalog {
	c := &Catalog{
		goods:   make(map[string]*model.Good, len(goods)),
		order:   make([]string, 0, len(goods)),
		masters: make(map[string]*model.MasterEntity, len(masters)),
	}
	for i := range goods {
		g := &goods[i]
		if _, dup := c.goods[g.ID]; dup {
			continue
		}
		c.goods[g.ID] = g
		c.order = append(c.order, g.ID)
	}
	for i := range masters {
		c.masters[masters[i].ID] = &masters[i]
	}
	return c
}

// Restrict returns a view of the catalog that only reconciles the given goods.
// Price list items of other goods are left alone, even when their good is gone.
// An empty ids slice keeps the whole catalog in scope.
func (c *Catalog) Restrict(ids []string) *Catalog {
	if len(ids) == 0 {
		return c
	}
	scope := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		scope[id] = struct{}{}
	}
	return &Catalog{goods: c.goods, order: c.order, masters: c.masters, scope: scope}
}

func (c *Catalog) inScope(goodID string) bool {
	if c.scope == nil {
		return true
	}
	_, ok := c.scope[goodID]
	return ok
}

func (c *Catalog) Good(id string) (*model.Good, bool) {
	g, ok := c.goods[id]
	return g, ok
}

// Goods returns the goods in scope in catalog order.
func (c *Catalog) Goods() []*model.Good {
	out := make([]*model.Good, 0, len(c.order))
	for _, id := range c.order {
		if c.inScope(id) {
			out = append(out, c.goods[id])
		}
	}
	return out
}

func (c *Catalog) Master(id string) (*model.MasterEntity, bool) {
	if id == "" {
		return nil, false
	}
	m, ok := c.masters[id]
	return m, ok
}

func (c *Catalog) code(id string) string {
	if m, ok := c.Master(id); ok {
		return m.Code
	}
	return id
}

func (c *Catalog) description(id string) string {
	if m, ok := c.Master(id); ok {
		return m.Description
	}
	return ""
}

// SubcategoryName resolves the displayed subcategory of a good or item.
// Bags and wallets are described by their bags/wallets category, remaining
// assortment may use a static tag, everything else references a subcategory.
func (c *Catalog) SubcategoryName(category string, sub model.Subcategory, bagsCategoryID *string) string {
	if model.IsBagLike(category) {
		if id := model.Deref(bagsCategoryID); id != "" {
			return c.description(id)
		}
		return c.description(sub.ID)
	}
	if sub.IsStatic() {
		return sub.Tag.DisplayName()
	}
	return c.description(sub.ID)
}
