package stock

import (
	"time"
)

// Stock represents a listed instrument managed by the broker
// Maps to market.stocks table
type Stock struct {
	ID          string    `json:"id" db:"id"`                     // 불변 식별자 (UUID)
	Symbol      string    `json:"symbol" db:"symbol"`             // 종목 코드 (영문 3자 + 숫자 1자)
	CompanyName string    `json:"company_name" db:"company_name"` // 회사명
	Price       float64   `json:"price" db:"price"`               // 현재가 (>= 0)
	CreatedTS   time.Time `json:"created_ts" db:"created_ts"`
	UpdatedTS   time.Time `json:"updated_ts" db:"updated_ts"`
}

// Request carries the caller-supplied fields used to create or replace a Stock.
// Price is a pointer so an omitted price can be told apart from zero.
type Request struct {
	Symbol      string   `json:"symbol" validate:"notblank"`
	CompanyName string   `json:"company_name" validate:"notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// PriceAdjustment is a relative price change expressed in percent
type PriceAdjustment struct {
	ChangePct *float64 `json:"change_pct"`
}

// NewStock builds an unsaved Stock from an accepted request
func NewStock(req Request) *Stock {
	s := &Stock{
		Symbol:      req.Symbol,
		CompanyName: req.CompanyName,
	}
	if req.Price != nil {
		s.Price = *req.Price
	}
	return s
}

// Apply overwrites symbol and company name and moves the price to the requested
// absolute value.
func (s *Stock) Apply(req Request) error {
	var proposed float64
	if req.Price != nil {
		proposed = *req.Price
	}

	newPrice, err := ChangePrice(s.Price, proposed, true)
	if err != nil {
		return err
	}

	s.Symbol = req.Symbol
	s.CompanyName = req.CompanyName
	s.Price = newPrice
	return nil
}
