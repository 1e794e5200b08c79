package models

import "github.com/shopspring/decimal"

// Rental is one copy of a game lent to a customer. A rental with no
// ReturnDate is open and holds one unit of the game's stock.
type Rental struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	CustomerID    uint                `gorm:"not null;index" json:"customerId"`
	GameID        uint                `gorm:"not null;index;index:idx_rentals_open_game,where:return_date IS NULL" json:"gameId"`
	RentDate      Date                `gorm:"not null" json:"rentDate"`
	DaysRented    int                 `gorm:"not null" json:"daysRented"`
	ReturnDate    *Date               `json:"returnDate"`
	OriginalPrice decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"originalPrice"`
	DelayFee      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"delayFee"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	Game     *Game     `gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT" json:"-"`
}

// IsOpen reports whether the game has not been returned yet.
func (r Rental) IsOpen() bool {
	return r.ReturnDate == nil
}

// RentalInput - body of POST /rentals. DaysRented positivity is checked by
// the rental workflow after both references resolve.
type RentalInput struct {
	CustomerID uint `json:"customerId" validate:"required,gt=0"`
	GameID     uint `json:"gameId" validate:"required,gt=0"`
	DaysRented int  `json:"daysRented"`
}

// RentalFilter narrows GET /rentals. Zero values mean "any".
type RentalFilter struct {
	CustomerID uint
	GameID     uint
}

type RentalCustomer struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RentalGame struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// RentalView is a rental with its customer and game summaries, as listed by
// GET /rentals.
type RentalView struct {
	Rental
	Customer RentalCustomer `json:"customer"`
	Game     RentalGame     `json:"game"`
}

func NewRentalView(r Rental) RentalView {
	view := RentalView{Rental: r}
	if r.Customer != nil {
		view.Customer = RentalCustomer{ID: r.Customer.ID, Name: r.Customer.Name}
	}
	if r.Game != nil {
		view.Game = RentalGame{ID: r.Game.ID, Name: r.Game.Name, CategoryID: r.Game.CategoryID}
		if r.Game.Category != nil {
			view.Game.CategoryName = r.Game.Category.Name
		}
	}
	return view
}
