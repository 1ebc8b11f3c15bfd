package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

type AddToCartRequest struct {
	UserID        string `json:"userId" validate:"required,uuid"`
	ProductID     string `json:"productId" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"cart_payment_method"`
}

type UpdateCartRequest struct {
	UserID    string `json:"userId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartView is the cart as returned to clients, with line items expanded to product display fields.
type CartView struct {
	ID            string                   `json:"id,omitempty"`
	UserID        string                   `json:"userId"`
	PaymentMethod models.CartPaymentMethod `json:"paymentMethod,omitempty"`
	Items         []models.CartItem        `json:"items"`
	TotalAmount   decimal.Decimal          `json:"totalAmount"`
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// AddItem adds quantity of a product to the user's cart, creating the cart on first use.
// Stock is checked before anything is written, so an OutOfStock add leaves the cart as it was.
func (s *CartService) AddItem(ctx context.Context, req *AddToCartRequest) (*CartView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	userID, _ := uuid.Parse(req.UserID)
	productID, _ := uuid.Parse(req.ProductID)

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound)
	}
	if product.TotalStock < req.Quantity {
		return nil, utils.NewOutOfStockError(i18n.KeyCartOutOfStock, product.TotalStock)
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		method := models.CartPaymentMethod(req.PaymentMethod)
		if method == "" {
			method = models.CartPaymentCOD
		}
		cart = &models.Cart{UserID: userID, PaymentMethod: method}
	} else if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(productID); idx >= 0 {
		quantity := cart.Items[idx].Quantity + req.Quantity
		if quantity > product.TotalStock {
			return nil, utils.NewOutOfStockError(i18n.KeyCartOutOfStock, product.TotalStock)
		}
		// Re-adding re-prices the line at current catalog values.
		cart.Items[idx].Quantity = quantity
		cart.Items[idx].Price = product.Price
		cart.Items[idx].SalePrice = product.SalePrice
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  req.Quantity,
			Price:     product.Price,
			SalePrice: product.SalePrice,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.expand(ctx, cart)
}

// GetCart returns an empty cart shape when the user has none. Lines whose product
// no longer exists are dropped and the pruned cart is persisted.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return emptyCart(userID), nil
	}
	if err != nil {
		return nil, err
	}

	before := len(cart.Items)
	view, err := s.expand(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) != before {
		if err := s.save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, req *UpdateCartRequest) (*CartView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	userID, _ := uuid.Parse(req.UserID)
	productID, _ := uuid.Parse(req.ProductID)

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyCartNotFound)
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, utils.NewNotFoundError(i18n.KeyCartItemNotPresent)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound)
	}
	if req.Quantity > product.TotalStock {
		return nil, utils.NewOutOfStockError(i18n.KeyCartOutOfStock, product.TotalStock)
	}

	cart.Items[idx].Quantity = req.Quantity

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.expand(ctx, cart)
}

// RemoveItem drops the product's line. A product that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyCartNotFound)
	}

	if cart.RemoveProducts(map[uuid.UUID]struct{}{productID: {}}) > 0 {
		if err := s.save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return s.expand(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyCartNotFound)
	}

	cart.Items = nil
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.expand(ctx, cart)
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	if err := s.carts.Save(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race to create this user's cart.
			return utils.NewConflictError(i18n.KeyCartRetry)
		}
		return err
	}
	return nil
}

// expand attaches product display fields to each line and drops lines whose
// product is gone. cart.Items is updated in place.
func (s *CartService) expand(ctx context.Context, cart *models.Cart) (*CartView, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := productSummaries(products)

	kept := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		summary, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		item.Product = summary
		kept = append(kept, item)
	}
	cart.Items = kept
	cart.RecalculateTotal()

	return &CartView{
		ID:            cart.ID.String(),
		UserID:        cart.UserID.String(),
		PaymentMethod: cart.PaymentMethod,
		Items:         kept,
		TotalAmount:   cart.TotalAmount,
	}, nil
}

func emptyCart(userID uuid.UUID) *CartView {
	return &CartView{
		UserID:      userID.String(),
		Items:       []models.CartItem{},
		TotalAmount: decimal.Zero,
	}
}
