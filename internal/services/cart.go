package services

import (
	"context"
	"sync"

	"github.com/vodintech/caragecarcare/internal/errors"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
	"github.com/vodintech/caragecarcare/internal/store"
)

// Cart aggregates chosen service packages by quantity for one session.
// Items keep their insertion order; a package name appears at most once.
type Cart struct {
	log       logger.Logger
	store     store.CartStore
	sessionID string

	mu    sync.Mutex
	items []models.CartItem
}

// NewCart creates a cart for one session
func NewCart(log logger.Logger, cartStore store.CartStore, sessionID string) *Cart {
	return &Cart{
		log:       log,
		store:     cartStore,
		sessionID: sessionID,
	}
}

// Add puts a package in the cart. Adding a package that is already present
// bumps its quantity instead of inserting a second row. The unit price is
// locked in from the package's discounted price at first add.
func (c *Cart) Add(pkg models.ServicePackage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].PackageName == pkg.Name {
			c.items[i].Quantity++
			return
		}
	}

	c.items = append(c.items, models.CartItem{
		PackageName: pkg.Name,
		UnitPrice:   pkg.DiscountedPrice,
		Quantity:    1,
	})
}

// Remove deletes the item for a package name. Removing an absent package is
// a no-op; this is the only way an item leaves the cart.
func (c *Cart) Remove(packageName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].PackageName == packageName {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity for a package. Quantities below 1 are
// rejected; decrementing can never remove an item. Unknown names are a no-op.
func (c *Cart) SetQuantity(packageName string, n int) error {
	if n < 1 {
		return ErrQuantityFloor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].PackageName == packageName {
			c.items[i].Quantity = n
			return nil
		}
	}
	return nil
}

// Items returns a copy of the cart rows in insertion order
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

// Len returns the number of distinct packages in the cart
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subtotal returns the sum of unit price times quantity over all rows
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Total equals Subtotal for now; taxes and fees are settled at checkout
func (c *Cart) Total() float64 {
	return c.Subtotal()
}

// Persist writes the cart to the session store, called before moving to checkout
func (c *Cart) Persist(ctx context.Context) error {
	c.mu.Lock()
	items := append([]models.CartItem(nil), c.items...)
	c.mu.Unlock()

	if err := c.store.PutCart(ctx, c.sessionID, items); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to persist cart")
	}
	return nil
}

// Load replaces the in-memory cart with the stored record, used on screen
// entry. A missing record means an empty cart, not an error.
func (c *Cart) Load(ctx context.Context) error {
	items, err := c.store.GetCart(ctx, c.sessionID)
	if err == store.ErrNotFound {
		items = nil
	} else if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load cart")
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// clear empties the in-memory cart after an order is placed
func (c *Cart) clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
