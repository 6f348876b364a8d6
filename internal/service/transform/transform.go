// Package transform converts raw catalog rows into load-ready records,
// one rule per entity kind.
package transform

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"lakesync/internal/domain"
)

// Compile-time check: Transformer implements the transformer port.
var _ domain.EntityTransformer = (*Transformer)(nil)

// Transformer holds the per-entity transformation rules. Transforms never
// fail a whole kind: malformed embedded data degrades to defaults and
// individually bad records are skipped with a warning, matching the
// loader's per-record isolation.
type Transformer struct {
	logger *slog.Logger
}

// New creates a Transformer.
func New(logger *slog.Logger) *Transformer {
	return &Transformer{logger: logger.With("component", "transformer")}
}

// Transform applies the rule for the given entity kind. The derived slice
// is non-empty only for Order, whose items expand into the deduplicated
// order-product junction set.
func (t *Transformer) Transform(kind domain.EntityKind, rows []domain.RawRow) ([]domain.Record, []domain.Record, error) {
	switch kind {
	case domain.KindReports:
		return t.reports(rows), nil, nil
	case domain.KindBilling:
		return t.billing(rows), nil, nil
	case domain.KindInventory:
		return t.inventory(rows), nil, nil
	case domain.KindOrder:
		orders, pairs := t.orders(rows)
		return orders, pairs, nil
	case domain.KindProductos:
		return t.products(rows), nil, nil
	default:
		return nil, nil, fmt.Errorf("no transform defined for entity kind %q", kind)
	}
}

// Repair parses a semi-structured textual encoding of a nested value into a
// typed object. Strict JSON is accepted as-is (keeping native number
// typing); otherwise the lenient key/value grammar applies and scalar
// values stay strings. On any failure the original string is logged and an
// empty object is returned — malformed nested data degrades to default
// field values rather than aborting the record.
func (t *Transformer) Repair(raw string) any {
	var strict any
	if err := json.Unmarshal([]byte(raw), &strict); err == nil {
		switch strict.(type) {
		case map[string]any, []any:
			return strict
		}
	}

	v, err := parseLenient(raw)
	if err != nil {
		t.logger.Error("could not repair structured value", "raw", raw, "error", err)
		return map[string]any{}
	}
	return v
}

func (t *Transformer) reports(rows []domain.RawRow) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		data := asObject(t.Repair(row["data"]))
		out = append(out, domain.Report{
			TenantID:   row["tenant_id"],
			ReportID:   row["report_id"],
			TotalSales: fieldOr(data, "total_sales", 0),
			TotalItems: fieldOr(data, "total_items", 0),
		})
	}
	return out
}

func (t *Transformer) billing(rows []domain.RawRow) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		details := asObject(t.Repair(row["payment_details"]))
		out = append(out, domain.BillingRecord{
			InvoiceID: row["invoice_id"],
			TenantID:  row["tenant_id"],
			OrderID:   row["order_id"],
			Method:    stringOr(details, "method", ""),
			Amount:    fieldOr(details, "amount", 0),
			Status:    row["status"],
		})
	}
	return out
}

func (t *Transformer) inventory(rows []domain.RawRow) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		stock, err := strconv.ParseFloat(row["stock_available"], 64)
		if err != nil {
			t.logger.Warn("skipping inventory record with non-numeric stock",
				"product_id", row["product_id"],
				"stock_available", row["stock_available"],
			)
			continue
		}
		out = append(out, domain.InventoryRecord{
			ProductID:      row["product_id"],
			TenantID:       row["tenant_id"],
			StockAvailable: stock,
			LastUpdate:     row["last_update"],
		})
	}
	return out
}

func (t *Transformer) products(rows []domain.RawRow) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		price, err := strconv.ParseFloat(row["price"], 64)
		if err != nil {
			t.logger.Warn("skipping product record with non-numeric price",
				"product_id", row["product_id"],
				"price", row["price"],
			)
			continue
		}
		out = append(out, domain.Product{
			ProductID:   row["product_id"],
			TenantID:    row["tenant_id"],
			Name:        row["name"],
			Price:       price,
			Description: row["description"],
		})
	}
	return out
}

// orders emits every order header, plus the deduplicated set of
// (order_id, product_id) pairs drawn from each order's repaired items list.
// A malformed items value costs the order its pairs, never its header.
func (t *Transformer) orders(rows []domain.RawRow) ([]domain.Record, []domain.Record) {
	orders := make([]domain.Record, 0, len(rows))
	seen := map[domain.OrderProduct]bool{}
	var pairs []domain.Record

	for _, row := range rows {
		orderID := row["order_id"]
		orders = append(orders, domain.Order{
			OrderID:  orderID,
			TenantID: row["tenant_id"],
			UserID:   row["user_id"],
			Status:   row["status"],
		})

		items, ok := t.Repair(row["items"]).([]any)
		if !ok {
			t.logger.Warn("unexpected items shape for order",
				"order_id", orderID, "items", row["items"])
			continue
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				t.logger.Warn("invalid product entry in order items",
					"order_id", orderID, "item", item)
				continue
			}
			productID := stringify(obj["product_id"])
			price, hasPrice := obj["price"]
			if productID == "" || productID == "0" || !hasPrice || price == nil {
				t.logger.Warn("invalid product entry in order items",
					"order_id", orderID, "item", obj)
				continue
			}
			pair := domain.OrderProduct{OrderID: orderID, ProductID: productID}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return orders, pairs
}

// asObject narrows a repaired value to an object, degrading anything else
// to empty.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// fieldOr returns the raw field value, or def when the key is absent.
func fieldOr(m map[string]any, key string, def any) any {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return def
}

// stringOr returns the field as a string, or def when absent.
func stringOr(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return stringify(v)
}

// stringify renders a scalar repaired value as a string. Nested shapes and
// nil render empty, which callers treat as absent.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
