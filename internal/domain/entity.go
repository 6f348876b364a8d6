package domain

// EntityKind names one source/target pairing processed independently by the
// sync run. Each kind has its own catalog query, transform rule, and target
// table; a failing kind never stops the others.
type EntityKind string

// The fixed set of entity kinds.
const (
	KindReports   EntityKind = "Reports"
	KindBilling   EntityKind = "Billing"
	KindInventory EntityKind = "Inventory"
	KindOrder     EntityKind = "Order"
	KindProductos EntityKind = "Productos"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindReports, KindBilling, KindInventory, KindOrder, KindProductos:
		return true
	}
	return false
}

// SyncTarget binds an entity kind to its catalog query and target table.
// JunctionTable is set only for kinds that emit a derived relationship set
// (Order → OrderProductos).
type SyncTarget struct {
	Kind          EntityKind
	Query         string
	Table         string
	JunctionTable string
}

// DefaultPlan returns the built-in (entity kind, query) pairs, in run order.
// The queries address staged service exports registered in the catalog; an
// operator-supplied plan file can override this set.
func DefaultPlan() []SyncTarget {
	return []SyncTarget{
		{
			Kind:  KindReports,
			Query: `SELECT * FROM "AwsDataCatalog"."catalogo"."api-reportes-dev"`,
			Table: "Reports",
		},
		{
			Kind:  KindBilling,
			Query: `SELECT * FROM "AwsDataCatalog"."catalogo"."billingservice-dev"`,
			Table: "Billing",
		},
		{
			Kind:  KindInventory,
			Query: `SELECT * FROM "AwsDataCatalog"."catalogo"."inventoryservice-dev"`,
			Table: "Inventory",
		},
		{
			Kind:          KindOrder,
			Query:         `SELECT * FROM "AwsDataCatalog"."catalogo"."orderservice-dev"`,
			Table:         "Orders",
			JunctionTable: "OrderProductos",
		},
		{
			Kind:  KindProductos,
			Query: `SELECT * FROM "AwsDataCatalog"."catalogo"."productservice-dev"`,
			Table: "Productos",
		},
	}
}
