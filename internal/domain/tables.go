package domain

var Tables = []interface{}{
	// Accounts
	&Administrator{},
	&Customer{},
	// Catalog
	&Category{},
	&Product{},
	// Orders
	&Order{},
	&OrderedItem{},
	&Payment{},
	// System
	&OprLog{},
}
