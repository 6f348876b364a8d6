package domain

// Record is a load-ready row. The loader builds its INSERT statement from
// Columns and Values, so the two must stay aligned. Fields extracted from
// repaired key/value text keep the repair's dynamic typing (string for k=v
// tokens, float64 for true JSON numbers) and are coerced by the target
// driver at the load boundary.
type Record interface {
	Columns() []string
	Values() []any
}

// Report is a per-tenant sales report summary.
type Report struct {
	TenantID   string
	ReportID   string
	TotalSales any // default 0 when absent from the repaired data column
	TotalItems any // default 0 when absent from the repaired data column
}

func (r Report) Columns() []string {
	return []string{"tenant_id", "report_id", "total_sales", "total_items"}
}

func (r Report) Values() []any {
	return []any{r.TenantID, r.ReportID, r.TotalSales, r.TotalItems}
}

// BillingRecord is one invoice line. Method and Amount come from the
// repaired payment_details column; the remaining fields pass through.
type BillingRecord struct {
	InvoiceID string
	TenantID  string
	OrderID   string
	Method    string
	Amount    any
	Status    string
}

func (b BillingRecord) Columns() []string {
	return []string{"invoice_id", "tenant_id", "order_id", "method", "amount", "status"}
}

func (b BillingRecord) Values() []any {
	return []any{b.InvoiceID, b.TenantID, b.OrderID, b.Method, b.Amount, b.Status}
}

// InventoryRecord is a point-in-time stock level for one product.
type InventoryRecord struct {
	ProductID      string
	TenantID       string
	StockAvailable float64
	LastUpdate     string
}

func (i InventoryRecord) Columns() []string {
	return []string{"product_id", "tenant_id", "stock_available", "last_update"}
}

func (i InventoryRecord) Values() []any {
	return []any{i.ProductID, i.TenantID, i.StockAvailable, i.LastUpdate}
}

// Product is a catalog product.
type Product struct {
	ProductID   string
	TenantID    string
	Name        string
	Price       float64
	Description string
}

func (p Product) Columns() []string {
	return []string{"product_id", "tenant_id", "name", "price", "description"}
}

func (p Product) Values() []any {
	return []any{p.ProductID, p.TenantID, p.Name, p.Price, p.Description}
}

// Order is an order header.
type Order struct {
	OrderID  string
	TenantID string
	UserID   string
	Status   string
}

func (o Order) Columns() []string {
	return []string{"order_id", "tenant_id", "user_id", "status"}
}

func (o Order) Values() []any {
	return []any{o.OrderID, o.TenantID, o.UserID, o.Status}
}

// OrderProduct is the derived order↔product junction row. The transform
// guarantees the (order_id, product_id) set is deduplicated before any
// OrderProduct is materialized.
type OrderProduct struct {
	OrderID   string
	ProductID string
}

func (op OrderProduct) Columns() []string {
	return []string{"order_id", "product_id"}
}

func (op OrderProduct) Values() []any {
	return []any{op.OrderID, op.ProductID}
}
