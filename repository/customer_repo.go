package repository

import (
	"context"

	"gamerental/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	// List returns customers, optionally only those whose cpf starts with
	// cpfPrefix.
	List(ctx context.Context, cpfPrefix string) ([]models.Customer, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByCPF(ctx context.Context, cpf string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
}

type customerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context, cpfPrefix string) ([]models.Customer, error) {
	customers := []models.Customer{}
	query := r.db.WithContext(ctx)
	if cpfPrefix != "" {
		query = query.Where("cpf LIKE ?", prefixPattern(cpfPrefix))
	}
	err := query.Order("id").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) FindByCPF(ctx context.Context, cpf string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepository) Update(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}
