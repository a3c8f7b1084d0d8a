// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/utils"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,order_status"`
}

// NewOrderRequest is an order handed over by the checkout flow.
type NewOrderRequest struct {
	CustomerName    string                 `json:"customer_name" validate:"required"`
	CustomerEmail   string                 `json:"customer_email" validate:"required,email"`
	Products        []models.OrderLine     `json:"products" validate:"required,min=1,dive"`
	TotalAmount     float64                `json:"total_amount" validate:"gte=0"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

type OrderService struct {
	orders repository.OrderRepository
	hub    *realtime.Hub
}

func NewOrderService(orders repository.OrderRepository, hub *realtime.Hub) *OrderService {
	return &OrderService{orders: orders, hub: hub}
}

// SalesTally sums ordered quantity per product id across orders.
func SalesTally(orders []models.Order) map[string]int {
	tally := make(map[string]int)
	for _, order := range orders {
		for _, line := range order.Products {
			tally[line.ID] += line.Quantity
		}
	}
	return tally
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets any legal status. Transitions are not ordered.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateOrderStatusRequest) error {
	if err := utils.ValidateStruct(req); err != nil || !req.Status.Valid() {
		return ErrInvalidOrderStatus
	}

	if err := s.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"status":   req.Status,
	}).Info("Order status updated")
	s.hub.Publish(models.CollectionOrders, id)
	return nil
}

// CreateOrder validates and stores an incoming order as pending.
func (s *OrderService) CreateOrder(ctx context.Context, req *NewOrderRequest) (*models.Order, error) {
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		Products:        req.Products,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.hub.Publish(models.CollectionOrders, order.ID)
	return order, nil
}
