package domain

// Entity names a persisted record type.
type Entity string

const (
	EntityAdministrator Entity = "administrator"
	EntityCustomer      Entity = "customer"
	EntityCategory      Entity = "category"
	EntityProduct       Entity = "product"
	EntityOrder         Entity = "order"
	EntityOrderedItem   Entity = "orderedItem"
	EntityPayment       Entity = "payment"
)

// RelationKind is the direction of a link between two entities.
type RelationKind string

const (
	HasMany   RelationKind = "has_many"
	BelongsTo RelationKind = "belongs_to"
)

// Relation describes one foreign-key link. Links are read-time only:
// nothing here is enforced when rows are written or deleted.
type Relation struct {
	Kind       RelationKind
	ForeignKey string // column holding the key, always on the child side
	Target     Entity
	// Association is the struct field filled when the relation is part of the
	// include tree. Empty means the link is declared but never loaded.
	Association string
	// Columns restricts the loaded columns; nil loads the whole row.
	Columns []string
}

// Included reports whether reads attach the related rows.
func (r Relation) Included() bool {
	return r.Association != ""
}

// Relations is the relationship graph of the order system.
var Relations = map[Entity][]Relation{
	EntityAdministrator: nil,
	EntityCustomer: {
		{Kind: HasMany, ForeignKey: "customer_id", Target: EntityOrder, Association: "Orders"},
	},
	EntityCategory: {
		{Kind: HasMany, ForeignKey: "category_id", Target: EntityProduct, Association: "Products"},
	},
	EntityProduct: {
		{Kind: BelongsTo, ForeignKey: "category_id", Target: EntityCategory, Association: "Category",
			Columns: []string{"id", "category_name"}},
		{Kind: HasMany, ForeignKey: "product_id", Target: EntityOrderedItem, Association: "OrderedItems",
			Columns: []string{"id", "product_id", "order_id", "quantity", "unit_price"}},
	},
	EntityOrder: {
		{Kind: BelongsTo, ForeignKey: "customer_id", Target: EntityCustomer},
		{Kind: HasMany, ForeignKey: "order_id", Target: EntityOrderedItem, Association: "OrderedItems"},
		{Kind: HasMany, ForeignKey: "order_id", Target: EntityPayment, Association: "Payments"},
	},
	EntityOrderedItem: {
		{Kind: BelongsTo, ForeignKey: "order_id", Target: EntityOrder},
		{Kind: BelongsTo, ForeignKey: "product_id", Target: EntityProduct},
	},
	EntityPayment: {
		{Kind: BelongsTo, ForeignKey: "order_id", Target: EntityOrder},
	},
}

// IncludesOf returns the relations attached when a single row of e is read.
func IncludesOf(e Entity) []Relation {
	var out []Relation
	for _, r := range Relations[e] {
		if r.Included() {
			out = append(out, r)
		}
	}
	return out
}

// DependentsOf lists the links pointing at e from other entities, i.e. the rows
// that keep a dangling key once an e row is deleted.
func DependentsOf(e Entity) []Relation {
	var out []Relation
	for child, rels := range Relations {
		for _, r := range rels {
			if r.Kind == BelongsTo && r.Target == e {
				out = append(out, Relation{Kind: HasMany, ForeignKey: r.ForeignKey, Target: child})
			}
		}
	}
	return out
}

// ModelOf returns a zero value of the gorm model backing e.
func ModelOf(e Entity) interface{} {
	switch e {
	case EntityAdministrator:
		return &Administrator{}
	case EntityCustomer:
		return &Customer{}
	case EntityCategory:
		return &Category{}
	case EntityProduct:
		return &Product{}
	case EntityOrder:
		return &Order{}
	case EntityOrderedItem:
		return &OrderedItem{}
	case EntityPayment:
		return &Payment{}
	}
	return nil
}
