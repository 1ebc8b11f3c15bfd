// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shopwave/ecommerce-backend/internal/config"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
)

// Order event types published to the order topic.
const (
	EventOrderCreated              = "order.created"
	EventOrderStatusChanged        = "order.status_changed"
	EventOrderPaymentStatusChanged = "order.payment_status_changed"
)

// OrderNotifier is told about order lifecycle changes. Implementations must
// not fail the caller: delivery problems are logged, not returned.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
	OrderStatusChanged(ctx context.Context, order *models.Order)
	PaymentStatusChanged(ctx context.Context, order *models.Order)
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderEvent struct {
	Type          string               `json:"type"`
	OrderID       string               `json:"orderId"`
	UserID        string               `json:"userId"`
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	writer       EventWriter
	users        repository.UserRepository
	email        config.EmailConfig
	writeTimeout time.Duration
	sendMail     sendMailFunc
	templates    *template.Template
}

// NewNotificationService wires the event writer (nil disables events) and the SMTP mailer.
func NewNotificationService(writer EventWriter, users repository.UserRepository, cfg *config.Config) *NotificationService {
	return &NotificationService{
		writer:       writer,
		users:        users,
		email:        cfg.Email,
		writeTimeout: cfg.Kafka.WriteTimeout,
		sendMail:     smtp.SendMail,
		templates:    template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
	}
}

// NewKafkaWriter returns nil when no brokers are configured.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrderTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireOne,
	}
}

var _ OrderNotifier = (*NotificationService)(nil)

func (s *NotificationService) OrderCreated(ctx context.Context, order *models.Order) {
	s.publish(ctx, EventOrderCreated, order)

	// Mail delivery is slow; it must not hold the request.
	snapshot := *order
	snapshot.CartItems = append([]models.OrderItem(nil), order.CartItems...)
	go func() {
		if err := s.SendOrderConfirmation(context.Background(), &snapshot); err != nil {
			logrus.WithError(err).WithField("order_id", snapshot.ID).Warn("Order confirmation email failed")
		}
	}()
}

func (s *NotificationService) OrderStatusChanged(ctx context.Context, order *models.Order) {
	s.publish(ctx, EventOrderStatusChanged, order)
}

func (s *NotificationService) PaymentStatusChanged(ctx context.Context, order *models.Order) {
	s.publish(ctx, EventOrderPaymentStatusChanged, order)
}

func (s *NotificationService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.writer == nil {
		return
	}

	event := OrderEvent{
		Type:          eventType,
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		OccurredAt:    time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode order event")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()

	// Keyed by order so one order's events stay ordered within a partition.
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": event.OrderID,
			"event":    eventType,
		}).Warn("Failed to publish order event")
	}
}

// SendOrderConfirmation mails the order summary to the buyer.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("load buyer: %w", err)
	}

	data := map[string]interface{}{
		"UserName":      user.UserName,
		"OrderID":       order.ID.String(),
		"Items":         order.CartItems,
		"TotalAmount":   order.TotalAmount.StringFixed(2),
		"PaymentMethod": order.PaymentMethod,
		"Address":       order.AddressInfo,
		"StoreName":     s.email.FromName,
	}

	body, err := s.renderTemplate(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, fmt.Sprintf("Order confirmed - #%s", order.ID.String()[:8]), body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", s.email.SMTPUsername, s.email.SMTPPassword, s.email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.email.FromName, s.email.FromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.email.SMTPHost, s.email.SMTPPort)
	return s.sendMail(addr, auth, s.email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.UserName}}!</h2>
	<p>Order <strong>#{{.OrderID}}</strong> has been placed.</p>
	<table>
		<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
		{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td></tr>
		{{end}}
	</table>
	<p>Total: <strong>{{.TotalAmount}}</strong> ({{.PaymentMethod}})</p>
	<p>Shipping to: {{.Address.Address}}, {{.Address.City}} {{.Address.Pincode}}</p>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`
