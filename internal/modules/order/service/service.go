package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	cartRepo "anoa.com/marketplace/internal/modules/cart/repository"
	"anoa.com/marketplace/internal/modules/order/dto"
	"anoa.com/marketplace/internal/modules/order/repository"
	productRepo "anoa.com/marketplace/internal/modules/product/repository"
	userRepo "anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/cache"
	"anoa.com/marketplace/pkg/events"
)

type OrderService interface {
	// Checkout turns every line of the user's cart into an order and empties the
	// cart, or commits nothing and reports the failing line.
	Checkout(ctx context.Context, userID uuid.UUID) (*dto.CheckoutResponse, error)
	DirectPurchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.OrderResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
	ListReceived(ctx context.Context, sellerID uuid.UUID) ([]dto.OrderResponse, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type Deps struct {
	DB        *gorm.DB
	Orders    repository.OrderRepository
	Cart      cartRepo.CartRepository
	Products  productRepo.ProductRepository
	Users     userRepo.UserRepository
	Locker    *cache.Locker
	LockTTL   time.Duration
	Publisher events.Publisher
	Logger    *zap.Logger
}

type orderService struct {
	db        *gorm.DB
	orders    repository.OrderRepository
	cart      cartRepo.CartRepository
	products  productRepo.ProductRepository
	users     userRepo.UserRepository
	locker    *cache.Locker
	lockTTL   time.Duration
	publisher events.Publisher
	logger    *zap.Logger
}

func NewOrderService(d Deps) OrderService {
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.LockTTL <= 0 {
		d.LockTTL = 15 * time.Second
	}
	return &orderService{
		db:        d.DB,
		orders:    d.Orders,
		cart:      d.Cart,
		products:  d.Products,
		users:     d.Users,
		locker:    d.Locker,
		lockTTL:   d.LockTTL,
		publisher: d.Publisher,
		logger:    d.Logger,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*dto.CheckoutResponse, error) {
	lockKey := "checkout:" + userID.String()
	lockValue := uuid.NewString()

	acquired, err := s.locker.AcquireLock(ctx, lockKey, lockValue, s.lockTTL)
	if err != nil {
		// The transaction below still refuses a cart that changed under it.
		s.logger.Warn("checkout lock unavailable", zap.String("user_id", userID.String()), zap.Error(err))
	} else if !acquired {
		return nil, apperror.Conflict("checkout already in progress")
	}
	defer func() {
		if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			s.logger.Warn("failed to release checkout lock", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}()

	lines, err := s.cart.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.Validation("cart", "cart is empty")
	}

	lineIDs := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		lineIDs[i] = l.ID
	}

	orders := make([]*entity.Order, 0, len(lines))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := s.cart.WithTx(tx)
		products := s.products.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)

		present, err := cart.ExistingIDs(ctx, userID, lineIDs)
		if err != nil {
			return err
		}

		for i, line := range lines {
			if !present[line.ID] {
				return lineError(i, line, "line no longer in cart", apperror.ErrNotFound)
			}

			product, err := products.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return lineError(i, line, "product no longer available", apperror.ErrNotFound)
				}
				return err
			}

			reserved, err := products.ReserveStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !reserved {
				return lineError(i, line, "insufficient stock", nil)
			}

			order := &entity.Order{
				UserID:      userID,
				ProductID:   line.ProductID,
				SellerID:    product.SellerID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Amount:      line.Amount,
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				return lineError(i, line, "failed to record order", err)
			}
			orders = append(orders, order)
		}

		removed, err := cart.DeleteLines(ctx, userID, lineIDs)
		if err != nil {
			return err
		}
		if removed != int64(len(lineIDs)) {
			return &apperror.TransactionError{Index: -1, Reason: "cart changed during checkout"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, orders)

	res := dto.NewCheckoutResponse(orders)
	return &res, nil
}

func (s *orderService) DirectPurchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.OrderResponse, error) {
	if quantity <= 0 {
		return nil, apperror.Validation("quantity", "must be greater than 0")
	}

	if _, err := s.users.FindBuyerProfile(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("buyer profile not found")
		}
		return nil, err
	}

	var order *entity.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("product not found")
			}
			return err
		}

		reserved, err := products.ReserveStock(ctx, productID, quantity)
		if err != nil {
			return err
		}
		if !reserved {
			return &apperror.TransactionError{Index: -1, ProductID: productID, Reason: "insufficient stock"}
		}

		order = &entity.Order{
			UserID:      userID,
			ProductID:   productID,
			SellerID:    product.SellerID,
			ProductName: product.Name,
			Quantity:    quantity,
			Amount:      product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		return s.orders.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, []*entity.Order{order})

	res := dto.NewOrderResponse(order)
	return &res, nil
}

func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponses(orders), nil
}

func (s *orderService) ListReceived(ctx context.Context, sellerID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponses(orders), nil
}

func (s *orderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	n, err := s.orders.Delete(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("order not found")
	}
	return nil
}

// publish runs after commit. The orders stand whether or not the events go out.
func (s *orderService) publish(ctx context.Context, orders []*entity.Order) {
	evts := make([]events.OrderPlaced, 0, len(orders))
	for _, o := range orders {
		evts = append(evts, events.OrderPlaced{
			OrderID:   o.ID,
			UserID:    o.UserID,
			SellerID:  o.SellerID,
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			Amount:    o.Amount,
			PlacedAt:  o.CreatedAt,
		})
	}
	if err := s.publisher.PublishOrdersPlaced(context.WithoutCancel(ctx), evts); err != nil {
		s.logger.Error("failed to publish order events", zap.Int("orders", len(evts)), zap.Error(err))
	}
}

func lineError(i int, line *entity.CartLine, reason string, err error) *apperror.TransactionError {
	return &apperror.TransactionError{
		Index:     i,
		LineID:    line.ID,
		ProductID: line.ProductID,
		Reason:    reason,
		Err:       err,
	}
}
