package analytics

import "dinein-dashboard/models"

// fixture is one item-level export row.
type fixture struct {
	order    string
	date     string
	api      bool
	kitchen  string
	category string
	name     string
	kind     string
	price    string
	qty      string
	total    string
	ts       string
}

func (f fixture) row() models.Row {
	creator := "Waiter Sam"
	if f.api {
		creator = "DINE IN API"
	}
	createdAt := ""
	if f.date != "" {
		createdAt = f.date + " 12:00:00"
	}
	return models.Row{
		"ORDER_ID":             f.order,
		"ORDER_CREATED_AT":     createdAt,
		"CREATED_BY_FULL_NAME": creator,
		"KITCHEN_NAME_CLEAN":   f.kitchen,
		"CATEGORY_NAME":        f.category,
		"ITEM_NAME_CLEAN":      f.name,
		"ITEM_ADDON_FLG":       f.kind,
		"I_MENU_PRICE_B_TAX":   f.price,
		"ITEM_QUANTITY":        f.qty,
		"ORDER_TOTAL_LCY":      f.total,
		"ITEM_CREATED_AT":      f.ts,
	}
}

func prepare(fs ...fixture) *Prepared {
	ds := &models.Dataset{Name: "test.csv"}
	for _, f := range fs {
		ds.Rows = append(ds.Rows, f.row())
	}
	return Prepare(ds)
}

func orderLevel(rows ...models.Row) *Prepared {
	return Prepare(&models.Dataset{Name: "orders.csv", Rows: rows})
}

// mixed is a small two-kitchen, two-day item-level dataset. Order O2 carries
// one AYCE item next to a regular one.
func mixed() *Prepared {
	return prepare(
		fixture{order: "O1", date: "2024-01-06", kitchen: "Marina", category: "Breakfast", name: "Eggs", kind: "COMBO_ITEM", price: "40", total: "60", ts: "t1"},
		fixture{order: "O1", date: "2024-01-06", kitchen: "Marina", category: "Coffee", name: "Latte", kind: "COMBO_ITEM", price: "15", total: "60", ts: "t1"},
		fixture{order: "O1", date: "2024-01-06", kitchen: "Marina", category: "Add-ons", name: "Extra Shot", kind: "COMBO_ADDON", price: "5", total: "60", ts: "t2"},
		fixture{order: "O2", date: "2024-01-06", api: true, kitchen: "Marina", category: "AYCE Brunch", name: "AYCE Brunch", kind: "COMBO_ITEM", price: "120", total: "130", ts: "t1"},
		fixture{order: "O2", date: "2024-01-06", api: true, kitchen: "Marina", category: "Coffee", name: "Latte", kind: "COMBO_ITEM", price: "10", total: "130", ts: "t1"},
		fixture{order: "O3", date: "2024-01-08", api: true, kitchen: "Downtown", category: "Mains", name: "Burger", kind: "COMBO_ITEM", price: "45", qty: "2", total: "95", ts: "t1"},
		fixture{order: "O3", date: "2024-01-08", api: true, kitchen: "Downtown", category: "Add-ons", name: "Oat Milk", kind: "COMBO_ADDON", price: "0", total: "95", ts: "t1"},
		fixture{order: "O4", date: "2024-01-08", kitchen: "Downtown", category: "Mains", name: "Bowl", kind: "COMBO_ITEM", price: "35", total: "35", ts: "t1"},
		fixture{order: "O5", date: "2024-01-08", kitchen: "Marina", category: "Desserts", name: "Cake", kind: "COMBO_ITEM", price: "25", total: "25"},
	)
}
