package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	gateway  PaymentGateway
	notifier OrderNotifier
	currency string
}

type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	UserID        string             `json:"userId" validate:"required,uuid"`
	CartID        string             `json:"cartId" validate:"omitempty,uuid"`
	CartItems     []OrderItemRequest `json:"cartItems" validate:"required,min=1,dive"`
	AddressInfo   models.AddressInfo `json:"addressInfo"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,payment_method"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
}

type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId" validate:"required,uuid"`
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type CreateOrderResponse struct {
	Order   *models.Order     `json:"order"`
	Payment *PaymentHandshake `json:"payment,omitempty"`
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	gateway PaymentGateway,
	notifier OrderNotifier,
	currency string,
) *OrderService {
	if currency == "" {
		currency = "INR"
	}
	return &OrderService{
		orders:   orders,
		products: products,
		gateway:  gateway,
		notifier: notifier,
		currency: currency,
	}
}

// CreateOrder snapshots the submitted line items into a pending order and removes the
// ordered products from the source cart in the same transaction. For online payment the
// gateway call happens after the commit; if it fails the order stays, marked failed.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	req.AddressInfo.Address = strings.TrimSpace(req.AddressInfo.Address)
	req.AddressInfo.City = strings.TrimSpace(req.AddressInfo.City)
	req.AddressInfo.Pincode = strings.TrimSpace(req.AddressInfo.Pincode)
	req.AddressInfo.Phone = strings.TrimSpace(req.AddressInfo.Phone)
	if err := validate(req); err != nil {
		return nil, err
	}
	if !req.TotalAmount.IsPositive() {
		return nil, utils.NewValidationError(i18n.KeyValidationInvalid, "totalAmount")
	}

	order := &models.Order{
		UserID:        uuid.MustParse(req.UserID),
		AddressInfo:   req.AddressInfo,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusPending,
		TotalAmount:   req.TotalAmount.Round(2),
	}
	var cartID *uuid.UUID
	if req.CartID != "" {
		id := uuid.MustParse(req.CartID)
		cartID = &id
		order.CartID = cartID
	}
	for _, item := range req.CartItems {
		if item.Price.IsNegative() {
			return nil, utils.NewValidationError(i18n.KeyValidationInvalid, "price")
		}
		order.CartItems = append(order.CartItems, models.OrderItem{
			ProductID: uuid.MustParse(item.ProductID),
			Title:     item.Title,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.orders.CreateWithCartPrune(ctx, order, cartID); err != nil {
		return nil, err
	}

	if order.PaymentMethod == models.PaymentMethodCOD {
		s.notifier.OrderCreated(ctx, order)
		return &CreateOrderResponse{Order: order}, nil
	}

	handshake, err := s.gateway.CreateOrder(ctx, order.AmountInMinorUnits(), s.currency, order.ID.String())
	if err != nil {
		order.PaymentStatus = models.PaymentStatusFailed
		if updateErr := s.orders.UpdatePaymentStatus(context.WithoutCancel(ctx), order.ID, models.PaymentStatusFailed); updateErr != nil {
			logrus.WithError(updateErr).WithField("order_id", order.ID).Error("Failed to mark order payment as failed")
		}
		return nil, utils.NewUpstreamError(i18n.KeyOrderPaymentUpstream, err)
	}

	order.RazorpayOrderID = handshake.GatewayOrderID
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.OrderCreated(ctx, order)
	return &CreateOrderResponse{Order: order, Payment: handshake}, nil
}

// VerifyPayment authenticates the gateway callback for an unpaid razorpay order.
// A bad signature marks the payment failed; callbacks that cannot belong to the
// order are rejected without touching it.
func (s *OrderService) VerifyPayment(ctx context.Context, actor Actor, req *VerifyPaymentRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, uuid.MustParse(req.OrderID))
	if err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}
	if !actor.CanAccess(order.UserID) {
		return nil, utils.NewForbiddenError(i18n.KeyAuthForbiddenOwner)
	}

	if order.PaymentMethod != models.PaymentMethodRazorpay {
		return nil, utils.NewValidationError(i18n.KeyOrderPaymentNotOnline)
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, utils.NewConflictError(i18n.KeyOrderAlreadyPaid)
	}
	if order.RazorpayOrderID == "" || order.RazorpayOrderID != req.RazorpayOrderID {
		logrus.WithField("order_id", order.ID).Warn("Payment callback for a different gateway order")
		return nil, utils.NewValidationError(i18n.KeyOrderPaymentFailed)
	}

	if verifyErr := s.gateway.VerifyPayment(ctx, order.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); verifyErr != nil {
		logrus.WithError(verifyErr).WithField("order_id", order.ID).Warn("Payment verification failed")
		order.PaymentStatus = models.PaymentStatusFailed
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
		s.notifier.PaymentStatusChanged(ctx, order)
		return nil, utils.NewValidationError(i18n.KeyOrderPaymentFailed)
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.OrderStatus = models.OrderStatusProcessing
	order.RazorpayPaymentID = req.RazorpayPaymentID
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.PaymentStatusChanged(ctx, order)
	s.expand(ctx, []*models.Order{order})
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	ptrs := make([]*models.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	s.expand(ctx, ptrs)
	return orders, nil
}

func (s *OrderService) GetDetails(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}
	if !actor.CanAccess(order.UserID) {
		return nil, utils.NewForbiddenError(i18n.KeyAuthForbiddenOwner)
	}

	s.expand(ctx, []*models.Order{order})
	return order, nil
}

// UpdateStatus overwrites orderStatus. Any listed status may follow any other.
// Owners who are not admins may only cancel.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status string) (*models.Order, error) {
	next := models.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, utils.NewValidationError(i18n.KeyOrderInvalidStatus)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}
	if !actor.CanAccess(order.UserID) || (!actor.IsAdmin() && next != models.OrderStatusCancelled) {
		return nil, utils.NewForbiddenError(i18n.KeyAuthForbiddenOwner)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}
	order.OrderStatus = next

	s.notifier.OrderStatusChanged(ctx, order)
	s.expand(ctx, []*models.Order{order})
	return order, nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	next := models.PaymentStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, utils.NewValidationError(i18n.KeyOrderInvalidPaymentStatus)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}

	if err := s.orders.UpdatePaymentStatus(ctx, orderID, next); err != nil {
		return nil, notFound(err, i18n.KeyOrderNotFound)
	}
	order.PaymentStatus = next

	s.notifier.PaymentStatusChanged(ctx, order)
	s.expand(ctx, []*models.Order{order})
	return order, nil
}

// expand attaches current product display fields to order lines. Lines whose
// product is gone keep their snapshot and get no expansion.
func (s *OrderService) expand(ctx context.Context, orders []*models.Order) {
	var ids []uuid.UUID
	for _, o := range orders {
		for _, item := range o.CartItems {
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Warn("Failed to expand order products")
		return
	}
	byID := productSummaries(products)

	for _, o := range orders {
		for i := range o.CartItems {
			o.CartItems[i].Product = byID[o.CartItems[i].ProductID]
		}
	}
}
