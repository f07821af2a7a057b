package order

import (
	"errors"
	"fmt"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"
	"goby/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrOrderHasNoItems is returned when attempting to create an order without items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")
)

// Item represents a single order line: a menu item with the price captured
// at ordering time and the requested quantity.
//
// Item is an immutable value object. Prices are fixed-point decimals with
// two fractional digits; quantities are positive integers.
type Item struct {
	menuItemID kernel.UUID
	price      decimal.Decimal
	quantity   int
	guard      guard.ConstructorGuard
}

// NewItem creates an order line with validation.
//
// Parameters:
//   - menuItemID: identifier of the menu item (must be a valid UUID)
//   - price: unit price (must be positive with at most 2 fractional digits)
//   - quantity: requested count (must be positive)
//
// Returns:
//   - Item: the validated order line
//   - error: validation error if any parameter is invalid
func NewItem(menuItemID kernel.UUID, price decimal.Decimal, quantity int) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if !price.IsPositive() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", price))
	}
	if price.Exponent() < -2 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s has more than 2 decimal places", price))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		menuItemID: menuItemID,
		price:      price,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MenuItemID returns the identifier of the referenced menu item.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Price returns the unit price captured when the order was placed.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Quantity returns the requested count of the menu item.
func (i Item) Quantity() int {
	return i.quantity
}

// Total returns price multiplied by quantity for this line.
func (i Item) Total() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Order represents a client's order at a restaurant. It is the aggregate root
// that manages the order lifecycle from creation through delivery to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, restaurant and client
//   - Must contain at least one item
//   - Status transitions follow the state machine defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// restaurantID identifies the restaurant the order was placed at
	restaurantID kernel.UUID

	// clientID identifies the client who placed the order
	clientID kernel.UUID

	// items are the order lines (at least one)
	items []Item

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create a fresh order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - restaurantID: the restaurant the order belongs to
//   - clientID: the client who placed the order
//   - items: at least one validated order line
//
// The created order starts in Pending status.
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
func NewOrder(id kernel.UUID, restaurantID kernel.UUID, clientID kernel.UUID, items []Item) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setRestaurantID(restaurantID),
		order.setClientID(clientID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it accepts an arbitrary valid status so that orders
// can be rehydrated mid-lifecycle.
//
// Returns an error if any attribute fails validation, protecting against
// corrupted rows producing invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	clientID kernel.UUID,
	items []Item,
	status Status,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setRestaurantID(restaurantID),
		order.setClientID(clientID),
		order.setItems(items),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the identifier of the restaurant the order belongs to.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// ClientID returns the identifier of the client who placed the order.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalPrice returns the sum of price times quantity over all order lines.
// This is the amount a courier must hold in credits to take the order.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Total())
	}
	return total
}

// TotalItemCount returns the sum of quantities over all order lines.
func (o *Order) TotalItemCount() int {
	count := 0
	for _, item := range o.items {
		count += item.quantity
	}
	return count
}

// Take marks the order as claimed by a courier.
//
// This method enforces the following business rules:
//   - The order must be in Pending or Preparing status
//
// After a successful call the order's status becomes Taken. The associated
// Delivery is created by the application layer in the same transaction.
//
// Returns a StateIsInvalid error if the order is not available for delivery.
func (o *Order) Take() error {
	newStatus, err := o.status.Take()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartPreparing marks the order as being prepared by the restaurant.
// Only Pending orders can transition to Preparing.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartDelivering marks the order as picked up at the restaurant.
//
// This method enforces the following business rules:
//   - The order must be in Taken status
//
// Returns a StateIsInvalid error otherwise.
func (o *Order) StartDelivering() error {
	newStatus, err := o.status.StartDelivering()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete marks the order as delivered to the client.
//
// This method enforces the following business rules:
//   - The order must be in Delivering status
//   - Completed is a final state with no further transitions
//
// Returns a StateIsInvalid error otherwise.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel marks the order as cancelled.
// Cancellation is allowed from any non-terminal status.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setRestaurantID validates and sets the order's restaurant reference.
// This is a private method used only during construction.
func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

// setClientID validates and sets the order's client reference.
// This is a private method used only during construction.
func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

// setItems validates and sets the order lines.
// An order must have at least one item, and every item must be constructed
// via NewItem. This is a private method used only during construction.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setStatus validates and sets the order's status during restoration.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
