package models

type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"size:11;not null" json:"phone"`
	CPF      string `gorm:"column:cpf;size:11;uniqueIndex;not null" json:"cpf"`
	Birthday Date   `gorm:"not null" json:"birthday"`
}

// CustomerInput - body of POST /customers and PUT /customers/:id.
// An update replaces every field.
type CustomerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,digits,min=10,max=11"`
	CPF      string `json:"cpf" validate:"required,digits,len=11"`
	Birthday Date   `json:"birthday" validate:"required"`
}

func (in *CustomerInput) Normalize() {
	in.Name = trim(in.Name)
	in.Phone = trim(in.Phone)
	in.CPF = trim(in.CPF)
}

// Apply copies the input onto c, keeping c's id.
func (in CustomerInput) Apply(c *Customer) {
	c.Name = in.Name
	c.Phone = in.Phone
	c.CPF = in.CPF
	c.Birthday = in.Birthday
}
