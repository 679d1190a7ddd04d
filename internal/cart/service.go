package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/huum-shop/storefront-api/internal/geo"
	"github.com/huum-shop/storefront-api/internal/shipping"
)

// ErrNotFound indicates the requested line item is not in the cart.
var ErrNotFound = errors.New("item not in cart")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Product is the snapshot of catalog data a line item carries.
type Product struct {
	ID    string    `json:"id"`
	Slug  string    `json:"slug"`
	Name  string    `json:"name"`
	Price geo.Money `json:"price"`
}

// LineItem is one cart entry. Product IDs are unique across the cart:
// adding an existing product increments its quantity instead.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Totals aggregates the derived monetary components of the cart.
type Totals struct {
	Subtotal geo.Money `json:"subtotal"`
	Shipping geo.Money `json:"shipping"`
	Discount geo.Money `json:"discount"`
	Total    geo.Money `json:"total"`
}

// Quoter produces shipping quotes for a postal code and expanded basket.
type Quoter interface {
	Quote(ctx context.Context, zip string, unitPrices []geo.Money) (shipping.Calculation, error)
}

// Manager owns the line items, derived totals and shipping context as one
// transactional unit guarded by a single mutex. Whenever line items change
// the shipping cost is stale: it is reset to zero until a fresh quote for
// the remembered postal code is committed.
type Manager struct {
	mu            sync.Mutex
	items         []LineItem
	totals        Totals
	lastZip       string
	quoted        bool
	recalculating bool

	quoter Quoter
	store  *Store
	log    zerolog.Logger
}

// NewManager builds a manager and restores the persisted line items, if any.
// Restored carts always start with shipping at zero: a persisted shipping
// value is never trusted as authoritative.
func NewManager(ctx context.Context, store *Store, quoter Quoter, log zerolog.Logger) *Manager {
	m := &Manager{quoter: quoter, store: store, log: log}
	if store != nil {
		items, err := store.Load(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("restore cart snapshot")
		} else {
			m.items = items
		}
	}
	m.totals = computeTotals(m.items, 0, 0)
	return m
}

func computeTotals(items []LineItem, shippingCost, discount geo.Money) Totals {
	var subtotal geo.Money
	for _, it := range items {
		subtotal += it.Product.Price * geo.Money(it.Quantity)
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shippingCost,
		Discount: discount,
		Total:    subtotal + shippingCost - discount,
	}
}

// AddItem inserts a product or increments the quantity of an existing entry.
func (m *Manager) AddItem(ctx context.Context, p Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidInput
	}
	if p.ID == "" {
		return ErrInvalidInput
	}

	m.mu.Lock()
	wasQuoted := m.quoted
	countChanged := true
	for i := range m.items {
		if m.items[i].Product.ID == p.ID {
			m.items[i].Quantity += qty
			countChanged = false
			break
		}
	}
	if countChanged {
		m.items = append(m.items, LineItem{Product: p, Quantity: qty})
	}
	m.invalidateShippingLocked()
	m.mu.Unlock()

	m.persist(ctx)
	if countChanged {
		m.onBasketChanged(ctx, wasQuoted)
	}
	return nil
}

// RemoveItem deletes a line item.
func (m *Manager) RemoveItem(ctx context.Context, productID string) error {
	m.mu.Lock()
	wasQuoted := m.quoted
	idx := -1
	for i := range m.items {
		if m.items[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	m.invalidateShippingLocked()
	m.mu.Unlock()

	m.persist(ctx)
	m.onBasketChanged(ctx, wasQuoted)
	return nil
}

// SetQuantity overwrites the quantity of a line item. Zero or negative
// quantities remove the item entirely.
func (m *Manager) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return m.RemoveItem(ctx, productID)
	}

	m.mu.Lock()
	found := false
	for i := range m.items {
		if m.items[i].Product.ID == productID {
			m.items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.invalidateShippingLocked()
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// AcceptQuote commits a shipping option for the given postal code.
func (m *Manager) AcceptQuote(option shipping.Option, zip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastZip = zip
	m.quoted = true
	m.totals = computeTotals(m.items, option.Price, m.totals.Discount)
}

// ApplyQuote fetches a fresh quote for the postal code and commits the
// option with the given id, defaulting to the cheapest. A fresh quote is
// always computed, even for a repeated postal code, because the basket may
// have changed since the last one.
func (m *Manager) ApplyQuote(ctx context.Context, zip, optionID string) (shipping.Calculation, error) {
	if m.quoter == nil {
		return shipping.Calculation{}, errors.New("cart quoter not configured")
	}
	calc, err := m.quoter.Quote(ctx, zip, m.UnitPrices())
	if err != nil {
		return shipping.Calculation{}, err
	}
	if len(calc.Options) == 0 {
		return shipping.Calculation{}, errors.New("quote returned no options")
	}
	chosen := calc.Options[0]
	for _, o := range calc.Options {
		if o.ID == optionID {
			chosen = o
			break
		}
	}
	m.AcceptQuote(chosen, calc.ZipCode)
	return calc, nil
}

// Clear empties the cart and resets totals. The remembered postal code is
// kept so the calculator can pre-fill it on the next add.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	m.items = nil
	m.quoted = false
	m.totals = computeTotals(nil, 0, 0)
	m.mu.Unlock()

	m.persist(ctx)
}

// invalidateShippingLocked marks the current quote stale after a mutation.
// The postal code is preserved for automatic re-quoting.
func (m *Manager) invalidateShippingLocked() {
	m.quoted = false
	m.totals = computeTotals(m.items, 0, m.totals.Discount)
}

// onBasketChanged runs after the distinct line-item count changed. A quote
// accepted earlier is re-derived for the new contents without user input.
func (m *Manager) onBasketChanged(ctx context.Context, wasQuoted bool) {
	if !wasQuoted {
		return
	}
	m.AutoRecalculate(ctx)
}

// AutoRecalculate silently re-quotes shipping for the remembered postal
// code and commits the cheapest option. Failures leave the cart as it is:
// this path runs opportunistically and has no user to report to. A guard
// flag prevents overlapping recalculations for the same trigger.
func (m *Manager) AutoRecalculate(ctx context.Context) {
	if m.quoter == nil {
		return
	}
	m.mu.Lock()
	if m.recalculating || m.lastZip == "" || len(m.items) == 0 {
		m.mu.Unlock()
		return
	}
	m.recalculating = true
	zip := m.lastZip
	prices := expandUnitPrices(m.items)
	m.mu.Unlock()

	calc, err := m.quoter.Quote(ctx, zip, prices)

	m.mu.Lock()
	m.recalculating = false
	if err != nil {
		m.mu.Unlock()
		m.log.Warn().Err(err).Str("cep", zip).Msg("automatic shipping recalculation failed")
		return
	}
	if len(calc.Options) == 0 {
		m.mu.Unlock()
		return
	}
	cheapest := calc.Options[0]
	m.lastZip = zip
	m.quoted = true
	m.totals = computeTotals(m.items, cheapest.Price, m.totals.Discount)
	m.mu.Unlock()
}

func expandUnitPrices(items []LineItem) []geo.Money {
	var prices []geo.Money
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			prices = append(prices, it.Product.Price)
		}
	}
	return prices
}

func (m *Manager) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	m.mu.Lock()
	snapshot := append([]LineItem(nil), m.items...)
	m.mu.Unlock()
	if err := m.store.Save(ctx, snapshot); err != nil {
		m.log.Warn().Err(err).Msg("persist cart snapshot")
	}
}

// Items returns a copy of the current line items.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LineItem(nil), m.items...)
}

// Totals returns the current derived totals.
func (m *Manager) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// ItemCount returns the total number of units across all line items.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, it := range m.items {
		count += it.Quantity
	}
	return count
}

// UnitPrices returns the expanded per-unit price list for quoting.
func (m *Manager) UnitPrices() []geo.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	return expandUnitPrices(m.items)
}

// IsQuoted reports whether a quote is valid for the current contents.
func (m *Manager) IsQuoted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quoted
}

// LastZip returns the postal code of the most recent accepted quote.
func (m *Manager) LastZip() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastZip
}

// IsRecalculating reports whether an automatic re-quote is in flight.
func (m *Manager) IsRecalculating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculating
}
