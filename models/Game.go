package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Game struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null" json:"name"`
	Image       string          `gorm:"not null" json:"image"`
	StockTotal  int             `gorm:"not null" json:"stockTotal"`
	CategoryID  uint            `gorm:"not null;index" json:"categoryId"`
	PricePerDay decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"pricePerDay"`

	// CategoryName is filled only by queries that join categories.
	CategoryName string    `gorm:"->;-:migration" json:"categoryName,omitempty"`
	Category     *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// GameInput - body of POST /games
type GameInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Image       string          `json:"image" validate:"required,uri"`
	StockTotal  int             `json:"stockTotal" validate:"required,gt=0"`
	CategoryID  uint            `json:"categoryId" validate:"required,gt=0"`
	PricePerDay decimal.Decimal `json:"pricePerDay" validate:"required,gt=0,lte=9999999999.99"`
}

func (in *GameInput) Normalize() {
	in.Name = trim(in.Name)
	in.Image = trim(in.Image)
}
