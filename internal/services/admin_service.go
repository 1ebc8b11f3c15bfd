// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type AdminService struct {
	orders       repository.OrderRepository
	users        repository.UserRepository
	orderService *OrderService
	now          func() time.Time
}

type AdminDashboardStats struct {
	TotalUsers        int             `json:"totalUsers"`
	NewUsersThisMonth int             `json:"newUsersThisMonth"`
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue    decimal.Decimal `json:"monthlyRevenue"`
	UserGrowth        float64         `json:"userGrowth"`
	RevenueGrowth     float64         `json:"revenueGrowth"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func NewAdminService(orders repository.OrderRepository, users repository.UserRepository, orderService *OrderService) *AdminService {
	return &AdminService{
		orders:       orders,
		users:        users,
		orderService: orderService,
		now:          time.Now,
	}
}

// Dashboard Statistics. Revenue counts paid orders only.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	stats := &AdminDashboardStats{
		TotalUsers:     len(users),
		TotalOrders:    len(orders),
		TotalRevenue:   decimal.Zero,
		MonthlyRevenue: decimal.Zero,
	}

	var lastMonthUsers int
	for _, u := range users {
		switch {
		case !u.CreatedAt.Before(monthStart):
			stats.NewUsersThisMonth++
		case !u.CreatedAt.Before(lastMonthStart):
			lastMonthUsers++
		}
	}

	lastMonthRevenue := decimal.Zero
	for _, o := range orders {
		if o.OrderStatus == models.OrderStatusPending {
			stats.PendingOrders++
		}
		if o.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		switch {
		case !o.CreatedAt.Before(monthStart):
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(o.TotalAmount)
		case !o.CreatedAt.Before(lastMonthStart):
			lastMonthRevenue = lastMonthRevenue.Add(o.TotalAmount)
		}
	}

	// Growth calculations
	if lastMonthUsers > 0 {
		stats.UserGrowth = float64(stats.NewUsersThisMonth-lastMonthUsers) / float64(lastMonthUsers) * 100
	}
	if lastMonthRevenue.IsPositive() {
		stats.RevenueGrowth = stats.MonthlyRevenue.Sub(lastMonthRevenue).Div(lastMonthRevenue).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return stats, nil
}

// ListOrders returns every order newest first with the buyer's name and email attached.
// An empty store is reported as NotFound.
func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, utils.NewNotFoundError(i18n.KeyOrderNoneFound)
	}

	ptrs := make([]*models.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	s.attachUsers(ctx, ptrs)
	return orders, nil
}

func (s *AdminService) GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderService.GetDetails(ctx, Actor{Role: models.UserRoleAdmin}, orderID)
	if err != nil {
		return nil, err
	}
	s.attachUsers(ctx, []*models.Order{order})
	return order, nil
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, admin Actor, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.orderService.UpdateStatus(ctx, admin, orderID, req.OrderStatus)
}

func (s *AdminService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, req *UpdatePaymentStatusRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.orderService.UpdatePaymentStatus(ctx, orderID, req.PaymentStatus)
}

// ExportOrders writes all orders as an xlsx workbook, one row per order line.
func (s *AdminService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return err
	}
	ptrs := make([]*models.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	s.attachUsers(ctx, ptrs)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{
		"OrderID", "CreatedAt", "UserName", "Email", "ProductID", "Title", "Quantity", "Price",
		"TotalAmount", "PaymentMethod", "PaymentStatus", "OrderStatus", "Address", "City", "Pincode", "Phone",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, o := range orders {
		var userName, email string
		if o.User != nil {
			userName, email = o.User.UserName, o.User.Email
		}
		for _, item := range o.CartItems {
			row := sheet.AddRow()
			row.AddCell().SetString(o.ID.String())
			row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetString(userName)
			row.AddCell().SetString(email)
			row.AddCell().SetString(item.ProductID.String())
			row.AddCell().SetString(item.Title)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetFloat(item.Price.InexactFloat64())
			row.AddCell().SetFloat(o.TotalAmount.InexactFloat64())
			row.AddCell().SetString(string(o.PaymentMethod))
			row.AddCell().SetString(string(o.PaymentStatus))
			row.AddCell().SetString(string(o.OrderStatus))
			row.AddCell().SetString(o.AddressInfo.Address)
			row.AddCell().SetString(o.AddressInfo.City)
			row.AddCell().SetString(o.AddressInfo.Pincode)
			row.AddCell().SetString(o.AddressInfo.Phone)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ListUsers returns every user newest first. Password hashes never leave the service.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID uuid.UUID, req *UpdateUserRoleRequest) (*models.UserSummary, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	role := models.UserRole(strings.TrimSpace(req.Role))
	if !role.Valid() {
		return nil, utils.NewValidationError(i18n.KeyUserInvalidRole)
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound)
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *AdminService) attachUsers(ctx context.Context, orders []*models.Order) {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.UserID]; ok {
			continue
		}
		seen[o.UserID] = struct{}{}
		ids = append(ids, o.UserID)
	}
	if len(ids) == 0 {
		return
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).WithField("users", len(ids)).Warn("Failed to attach order buyers")
		return
	}
	byID := make(map[uuid.UUID]models.UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	for _, o := range orders {
		if summary, ok := byID[o.UserID]; ok {
			// Admin listings show name and email only.
			o.User = &models.UserSummary{UserName: summary.UserName, Email: summary.Email}
		}
	}
}
