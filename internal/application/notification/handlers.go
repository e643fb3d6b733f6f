package notification

import (
	"context"
	"fmt"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler notifies staff when an item falls to its minimum
// quantity threshold.
type LowStockHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewLowStockHandler creates a new LowStockHandler
func NewLowStockHandler(notifier Notifier, logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{notifier: notifier, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventLowStock}
}

// Handle processes a LowStockEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	low, ok := event.(*inventory.LowStockEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	n := Notification{
		Title: "Low stock",
		Message: fmt.Sprintf("%s (%s) is down to %d units (threshold %d)",
			low.ItemName, low.SKU, low.Quantity, low.MinQuantity),
		Level: "warning",
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		h.logger.Warn("low stock notification failed",
			zap.String("sku", low.SKU), zap.Error(err))
	}
	return nil
}

// PaymentRecordedHandler notifies staff when a sale is fully settled
type PaymentRecordedHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewPaymentRecordedHandler creates a new PaymentRecordedHandler
func NewPaymentRecordedHandler(notifier Notifier, logger *zap.Logger) *PaymentRecordedHandler {
	return &PaymentRecordedHandler{notifier: notifier, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentRecordedHandler) EventTypes() []string {
	return []string{sale.EventPaymentRecorded}
}

// Handle processes a PaymentRecordedEvent. Only full settlements notify;
// partial payments are routine.
func (h *PaymentRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*sale.PaymentRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	if recorded.PaymentStatus != sale.PaymentStatusPaid {
		return nil
	}

	n := Notification{
		Title:   "Sale settled",
		Message: fmt.Sprintf("Sale %s fully paid (%s via %s)", recorded.SaleNumber, recorded.PaidAmount.StringFixed(2), recorded.Method),
		Level:   "info",
	}
	if err := h.notifier.Notify(ctx, n); err != nil {
		h.logger.Warn("payment notification failed",
			zap.String("sale_number", recorded.SaleNumber), zap.Error(err))
	}
	return nil
}

// LogNotifier writes notifications to the application log. It is the
// default Notifier until an external channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification
func (n *LogNotifier) Notify(_ context.Context, notif Notification) error {
	n.logger.Info("notification",
		zap.String("title", notif.Title),
		zap.String("message", notif.Message),
		zap.String("level", notif.Level),
	)
	return nil
}

var (
	_ shared.EventHandler = (*LowStockHandler)(nil)
	_ shared.EventHandler = (*PaymentRecordedHandler)(nil)
	_ Notifier            = (*LogNotifier)(nil)
)
