package dto

import "github.com/shopspring/decimal"

type MarketplaceStats struct {
	TotalUsers    int64           `json:"total_users"`
	TotalBuyers   int64           `json:"total_buyers"`
	TotalSellers  int64           `json:"total_sellers"`
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type SellerStats struct {
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	Revenue       decimal.Decimal `json:"revenue"`
}
