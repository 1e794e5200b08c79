package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// CategoryInput - body of POST /categories
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (in *CategoryInput) Normalize() {
	in.Name = trim(in.Name)
}
