package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/payment"
	"bookstore-service/internal/products"
	"bookstore-service/internal/stores/kafka"
	"bookstore-service/internal/users"
	"bookstore-service/pkg/logkey"
)

// Webhook event types Razorpay delivers that this service acts on. Anything
// else is acknowledged and ignored.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

const currencyINR = "INR"

// Ledger is the slice of the order store the service needs.
type Ledger interface {
	InsertOrder(ctx context.Context, o *Order) error
	MarkIfPending(ctx context.Context, razorpayOrderID string, to Status, paymentID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// Catalog resolves product references.
type Catalog interface {
	GetProductByID(ctx context.Context, productID string) (products.Product, error)
}

// Directory resolves user references for admin listings.
type Directory interface {
	GetUserByID(ctx context.Context, userID string) (users.User, error)
}

// Producer publishes order events. A nil Producer disables publishing.
type Producer interface {
	ProduceMessage(topic string, key, value []byte) error
}

// Service orchestrates checkout and webhook reconciliation. It holds no
// state of its own; everything lives in the ledger.
type Service struct {
	ledger   Ledger
	catalog  Catalog
	users    Directory
	gateway  payment.Gateway
	producer Producer
}

func NewService(ledger Ledger, catalog Catalog, directory Directory, gateway payment.Gateway, producer Producer) (*Service, error) {
	if ledger == nil || catalog == nil || directory == nil || gateway == nil {
		return nil, fmt.Errorf("orders service is missing a dependency")
	}
	return &Service{
		ledger:   ledger,
		catalog:  catalog,
		users:    directory,
		gateway:  gateway,
		producer: producer,
	}, nil
}

// CheckoutResponse is what the storefront needs to open the Razorpay
// payment widget.
type CheckoutResponse struct {
	RazorpayOrderID string `json:"razorpay_order_id"`
	AmountPaise     int64  `json:"amount_paise"`
	Currency        string `json:"currency"`
	OrderID         string `json:"order_id"`
}

// Create reserves a gateway order for the product and persists a pending
// ledger entry carrying the gateway's reference. If the gateway call fails
// nothing is written, so there is never a local order without a gateway
// counterpart.
func (s *Service) Create(ctx context.Context, userID, productID string, quantity int) (CheckoutResponse, error) {
	if userID == "" {
		return CheckoutResponse{}, ErrUnauthorized
	}
	if quantity < 1 {
		return CheckoutResponse{}, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return CheckoutResponse{}, ErrProductNotFound
		}
		return CheckoutResponse{}, fmt.Errorf("loading product for checkout: %w", err)
	}

	amount := computeAmount(product.Price, quantity)
	receipt := fmt.Sprintf("receipt_order_%s", productID)
	notes := map[string]interface{}{
		"product_id": productID,
		"user_id":    userID,
	}

	razorpayOrderID, err := s.gateway.CreateOrder(ctx, amount, currencyINR, receipt, notes)
	if err != nil {
		return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	order := NewOrder(userID, productID, quantity, amount, razorpayOrderID)
	if err := s.ledger.InsertOrder(ctx, order); err != nil {
		return CheckoutResponse{}, fmt.Errorf("persisting order: %w", err)
	}

	slog.Info("order created",
		slog.String(logkey.OrderID, order.ID),
		slog.String(logkey.ProductID, productID),
		slog.Int64("amount_paise", amount))

	return CheckoutResponse{
		RazorpayOrderID: razorpayOrderID,
		AmountPaise:     amount,
		Currency:        currencyINR,
		OrderID:         order.ID,
	}, nil
}

// computeAmount converts the product's rupee price to paise and scales it by
// quantity: the order amount is the full line the gateway collects, not the
// unit price.
func computeAmount(price float64, quantity int) int64 {
	return int64(math.Round(price*100)) * int64(quantity)
}

// Reconcile applies one webhook event to the ledger. It is safe under
// redelivery and under concurrent delivery: only the call that flips the
// order out of pending applies side effects, everything else is a no-op.
func (s *Service) Reconcile(ctx context.Context, eventType, razorpayOrderID, razorpayPaymentID string) error {
	var target Status
	switch eventType {
	case EventPaymentCaptured:
		target = StatusCompleted
	case EventPaymentFailed:
		target = StatusFailed
		// The failed-payment entity still carries a payment id, but the
		// ledger only records references that captured money.
		razorpayPaymentID = ""
	default:
		slog.Info("unhandled webhook event type", slog.String(logkey.EventType, eventType))
		return nil
	}

	order, err := s.ledger.MarkIfPending(ctx, razorpayOrderID, target, razorpayPaymentID)
	if err != nil {
		return fmt.Errorf("reconciling order %s: %w", razorpayOrderID, err)
	}
	if order == nil {
		slog.Info("webhook event matched no pending order",
			slog.String(logkey.EventType, eventType),
			slog.String("razorpay_order_id", razorpayOrderID))
		return nil
	}

	slog.Info("order reconciled",
		slog.String(logkey.OrderID, order.ID),
		slog.String("status", string(order.Status)))

	if order.Status == StatusCompleted {
		s.publishOrderPaid(order)
	}
	return nil
}

// publishOrderPaid emits the order-paid event. Delivery is best effort: the
// order is already completed in the ledger and a broker outage must not turn
// a processed webhook into a gateway retry.
func (s *Service) publishOrderPaid(o *Order) {
	if s.producer == nil {
		return
	}
	data, err := json.Marshal(kafka.OrderPaidEvent{
		OrderID:     o.ID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		AmountPaise: o.AmountPaise,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to marshal order-paid event", slog.String(logkey.Error, err.Error()))
		return
	}
	if err := s.producer.ProduceMessage(kafka.TopicOrderPaid, []byte(o.ID), data); err != nil {
		slog.Error("failed to produce order-paid event",
			slog.String(logkey.OrderID, o.ID),
			slog.String(logkey.Error, err.Error()))
	}
}

// ListForUser returns the caller's orders, newest first, with product
// details resolved at read time.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]OrderView, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	list, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, list, false), nil
}

// ListAll returns every order for the admin dashboard.
func (s *Service) ListAll(ctx context.Context, role string) ([]OrderView, error) {
	if role != auth.RoleAdmin {
		return nil, ErrForbidden
	}
	list, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, list, true), nil
}

// resolve joins orders with their product (and, for admins, user) documents.
// Orders reference both weakly, so a deleted product degrades to a
// placeholder title instead of breaking the listing.
func (s *Service) resolve(ctx context.Context, list []Order, withUser bool) []OrderView {
	out := make([]OrderView, 0, len(list))
	for _, o := range list {
		view := OrderView{Order: o, ProductTitle: UnknownProductTitle}
		if p, err := s.catalog.GetProductByID(ctx, o.ProductID); err == nil {
			view.ProductTitle = p.Title
			view.ProductAuthor = p.Author
		}
		if withUser {
			if u, err := s.users.GetUserByID(ctx, o.UserID); err == nil {
				view.UserEmail = u.Email
			}
		}
		out = append(out, view)
	}
	return out
}
