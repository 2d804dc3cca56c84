package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
)

// CartSlot is the session slot holding the serialized line list.
const CartSlot = "cart"

// DeliveryFee is added to the cart total at checkout.
const DeliveryFee = models.Money(500)

var (
	// ErrLineNotFound is returned for a line index outside the cart.
	ErrLineNotFound = errors.New("stores: cart line not found")
	// ErrCartUnavailable wraps the read error of a cart whose slot could not
	// be loaded.
	ErrCartUnavailable = errors.New("stores: cart unavailable")
)

// Cart is the in-progress order of one browser session. Every mutation
// persists the full line list; a failed write leaves the cart as it was.
type Cart struct {
	slots kv.Store
	lines []models.OrderLine
	err   error
}

// NewCart hydrates a cart from slots. An absent slot gives an empty cart and a
// corrupt one is logged and discarded. When the store cannot be read at all
// the cart stays unhydrated: it reads as empty and every mutation returns the
// read error, so the persisted lines are never overwritten.
func NewCart(ctx context.Context, slots kv.Store) *Cart {
	c := &Cart{slots: slots}

	var lines []models.OrderLine
	err := kv.GetJSON(ctx, slots, CartSlot, &lines)
	switch {
	case err == nil:
		c.lines = lines
	case errors.Is(err, kv.ErrNotFound):
	case errors.Is(err, kv.ErrCorrupt):
		logger.WithCtx(ctx).Warn("cart: discarding persisted cart", "error", err)
	default:
		logger.WithCtx(ctx).Error("cart: read persisted cart", "error", err)
		c.err = fmt.Errorf("%w: %w", ErrCartUnavailable, err)
	}
	return c
}

// Err returns the read error of an unhydrated cart, or nil.
func (c *Cart) Err() error { return c.err }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []models.OrderLine {
	return append([]models.OrderLine(nil), c.lines...)
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Add puts one unit of item in the cart. A line for the same item gets its
// quantity bumped; otherwise a new line is appended at the item's price.
func (c *Cart) Add(ctx context.Context, item models.Item) error {
	next := c.Lines()
	key := item.Key()

	found := false
	for i := range next {
		if next[i].Item.Key() == key {
			next[i].Cantidad++
			next[i].Recompute()
			found = true
			break
		}
	}
	if !found {
		line := models.OrderLine{Item: item, Cantidad: 1, PrecioUnitario: item.Precio}
		line.Recompute()
		next = append(next, line)
	}
	return c.commit(ctx, "add", next)
}

// AdjustQuantity changes the quantity of line index by delta. The quantity
// never drops below 1; use Remove to delete a line.
func (c *Cart) AdjustQuantity(ctx context.Context, index, delta int) error {
	if err := c.check(index); err != nil {
		return err
	}
	next := c.Lines()
	next[index].Cantidad = max(next[index].Cantidad+delta, 1)
	next[index].Recompute()
	return c.commit(ctx, "adjust", next)
}

// Remove deletes line index.
func (c *Cart) Remove(ctx context.Context, index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	next := append(c.Lines()[:index:index], c.lines[index+1:]...)
	return c.commit(ctx, "remove", next)
}

// SetNotes replaces the free-text notes of line index.
func (c *Cart) SetNotes(ctx context.Context, index int, notes string) error {
	if err := c.check(index); err != nil {
		return err
	}
	next := c.Lines()
	next[index].Observaciones = notes
	return c.commit(ctx, "notes", next)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.commit(ctx, "clear", []models.OrderLine{})
}

// Total is the sum of the line subtotals.
func (c *Cart) Total() models.Money {
	var sum models.Money
	for _, l := range c.lines {
		sum += l.Subtotal
	}
	return sum
}

// PayableTotal is Total plus DeliveryFee.
func (c *Cart) PayableTotal() models.Money {
	return c.Total() + DeliveryFee
}

func (c *Cart) check(index int) error {
	switch {
	case c.err != nil:
		return c.err
	case index < 0 || index >= len(c.lines):
		return ErrLineNotFound
	}
	return nil
}

func (c *Cart) commit(ctx context.Context, kind string, next []models.OrderLine) error {
	if c.err != nil {
		return c.err
	}
	if err := kv.SetJSON(ctx, c.slots, CartSlot, next); err != nil {
		return fmt.Errorf("stores: save cart: %w", err)
	}
	c.lines = next
	metrics.CartMutation(kind)
	return nil
}
