package service

import (
	"context"
	"errors"
	"fmt"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/repository"
)

type CustomerService interface {
	List(ctx context.Context, cpfPrefix string) ([]models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, in models.CustomerInput) (*models.Customer, error)
	// Update replaces every field of the customer with the given id.
	Update(ctx context.Context, id uint, in models.CustomerInput) (*models.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context, cpfPrefix string) ([]models.Customer, error) {
	customers, err := s.repo.List(ctx, cpfPrefix)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound("customer")
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Create(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	if err := s.ensureCPFFree(ctx, in.CPF, 0); err != nil {
		return nil, err
	}

	customer := &models.Customer{}
	in.Apply(customer)
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCPFTaken
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, in models.CustomerInput) (*models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCPFFree(ctx, in.CPF, id); err != nil {
		return nil, err
	}

	in.Apply(customer)
	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCPFTaken
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// ensureCPFFree fails with a conflict when cpf belongs to a customer other
// than ownID.
func (s *customerService) ensureCPFFree(ctx context.Context, cpf string, ownID uint) error {
	existing, err := s.repo.FindByCPF(ctx, cpf)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find customer by cpf: %w", err)
	case existing.ID != ownID:
		return errCPFTaken
	}
	return nil
}

var errCPFTaken = apierror.Conflict("cpf", "cpf already registered")
