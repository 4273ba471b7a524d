package service

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/stat/dto"
	"anoa.com/marketplace/internal/modules/stat/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type StatService interface {
	GetMarketplaceStats(ctx context.Context) (*dto.MarketplaceStats, error)
	GetSellerStats(ctx context.Context, sellerID uuid.UUID) (*dto.SellerStats, error)
}

type statService struct {
	repo repository.StatRepository
}

func NewStatService(repo repository.StatRepository) StatService {
	return &statService{repo: repo}
}

func (s *statService) GetMarketplaceStats(ctx context.Context) (*dto.MarketplaceStats, error) {
	var res dto.MarketplaceStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.TotalUsers, err = s.repo.CountUsers(gctx, "")
		return
	})
	g.Go(func() (err error) {
		res.TotalBuyers, err = s.repo.CountUsers(gctx, entity.RoleBuyer)
		return
	})
	g.Go(func() (err error) {
		res.TotalSellers, err = s.repo.CountUsers(gctx, entity.RoleSeller)
		return
	})
	g.Go(func() (err error) {
		res.TotalProducts, err = s.repo.CountProducts(gctx, uuid.Nil)
		return
	})
	g.Go(func() (err error) {
		res.TotalOrders, res.Revenue, err = s.repo.OrderTotals(gctx, uuid.Nil)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *statService) GetSellerStats(ctx context.Context, sellerID uuid.UUID) (*dto.SellerStats, error) {
	products, err := s.repo.CountProducts(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, revenue, err := s.repo.OrderTotals(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &dto.SellerStats{
		TotalProducts: products,
		TotalOrders:   orders,
		Revenue:       revenue,
	}, nil
}
