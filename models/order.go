package models

// Order is the per-order record built from the first surviving row of an order.
type Order struct {
	OrderID          string  `json:"orderId"`
	Date             string  `json:"date"`
	Weekend          bool    `json:"isWeekend"`
	Kitchen          string  `json:"kitchen"`
	KitchenID        string  `json:"kitchenId"`
	LocationCategory string  `json:"locationCategory"`
	Channel          Channel `json:"channel"`
	Bill             float64 `json:"bill"`
}

// OrderSet is the Order Aggregator output. Orders keeps first-seen order.
type OrderSet struct {
	Orders  []Order
	ByID    map[string]int // index into Orders
	Undated int            // orders kept for counts but absent from date rollups
}

// Get returns the order with the given id.
func (s OrderSet) Get(id string) (Order, bool) {
	i, ok := s.ByID[id]
	if !ok {
		return Order{}, false
	}
	return s.Orders[i], true
}

// Len returns the number of distinct orders.
func (s OrderSet) Len() int { return len(s.Orders) }
