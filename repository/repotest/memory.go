// Package repotest provides an in-memory implementation of every repository
// interface, for service and handler tests. It enforces the same unique keys
// as the postgres schema.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gamerental/models"
	"gamerental/repository"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID map[string]uint
	err    error

	categories map[uint]models.Category
	games      map[uint]models.Game
	customers  map[uint]models.Customer
	rentals    map[uint]models.Rental
}

func New() *Store {
	return &Store{
		nextID:     map[string]uint{},
		categories: map[uint]models.Category{},
		games:      map[uint]models.Game{},
		customers:  map[uint]models.Customer{},
		rentals:    map[uint]models.Rental{},
	}
}

// FailWith makes every subsequent call return err, as if the database were
// unreachable. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }
func (s *Store) Games() repository.GameRepository          { return gameRepo{s} }
func (s *Store) Customers() repository.CustomerRepository  { return customerRepo{s} }
func (s *Store) Rentals() repository.RentalRepository      { return rentalRepo{s} }
func (s *Store) Stats() repository.StatsRepository         { return statsRepo{s} }

// RentalCount returns the number of stored rentals.
func (s *Store) RentalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rentals)
}

// OpenRentals returns the number of open rentals for gameID.
func (s *Store) OpenRentals(gameID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openRentalsLocked(gameID)
}

func (s *Store) openRentalsLocked(gameID uint) int {
	n := 0
	for _, r := range s.rentals {
		if r.GameID == gameID && r.IsOpen() {
			n++
		}
	}
	return n
}

func (s *Store) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ---- categories ----

type categoryRepo struct{ s *Store }

func (r categoryRepo) List(_ context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.Category{}
	for _, id := range sortedKeys(r.s.categories) {
		out = append(out, r.s.categories[id])
	}
	return out, nil
}

func (r categoryRepo) FindByID(_ context.Context, id uint) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r categoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r categoryRepo) Create(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	c.ID = r.s.id("categories")
	r.s.categories[c.ID] = *c
	return nil
}

// ---- games ----

type gameRepo struct{ s *Store }

func (r gameRepo) List(_ context.Context, namePrefix string) ([]models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.Game{}
	prefix := strings.ToLower(namePrefix)
	for _, id := range sortedKeys(r.s.games) {
		g := r.s.games[id]
		if !strings.HasPrefix(strings.ToLower(g.Name), prefix) {
			continue
		}
		if c, ok := r.s.categories[g.CategoryID]; ok {
			g.CategoryName = c.Name
		}
		out = append(out, g)
	}
	return out, nil
}

func (r gameRepo) FindByID(_ context.Context, id uint) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findGameLocked(id)
}

func (r gameRepo) FindByName(_ context.Context, name string) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, g := range r.s.games {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r gameRepo) Create(_ context.Context, g *models.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for _, existing := range r.s.games {
		if existing.Name == g.Name {
			return repository.ErrDuplicate
		}
	}
	g.ID = r.s.id("games")
	stored := *g
	stored.Category = nil
	stored.CategoryName = ""
	r.s.games[g.ID] = stored
	return nil
}

func (s *Store) findGameLocked(id uint) (*models.Game, error) {
	if s.err != nil {
		return nil, s.err
	}
	g, ok := s.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

// ---- customers ----

type customerRepo struct{ s *Store }

func (r customerRepo) List(_ context.Context, cpfPrefix string) ([]models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.Customer{}
	for _, id := range sortedKeys(r.s.customers) {
		c := r.s.customers[id]
		if strings.HasPrefix(c.CPF, cpfPrefix) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r customerRepo) FindByID(_ context.Context, id uint) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findCustomerLocked(id)
}

func (r customerRepo) FindByCPF(_ context.Context, cpf string) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, c := range r.s.customers {
		if c.CPF == cpf {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r customerRepo) Create(_ context.Context, c *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if r.s.cpfTakenLocked(c.CPF, 0) {
		return repository.ErrDuplicate
	}
	c.ID = r.s.id("customers")
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Update(_ context.Context, c *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.customers[c.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.s.cpfTakenLocked(c.CPF, c.ID) {
		return repository.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (s *Store) findCustomerLocked(id uint) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Store) cpfTakenLocked(cpf string, exceptID uint) bool {
	for _, c := range s.customers {
		if c.CPF == cpf && c.ID != exceptID {
			return true
		}
	}
	return false
}

// ---- rentals ----

type rentalRepo struct{ s *Store }

// Atomically runs fn with every other Atomically call excluded and discards
// the rentals fn inserted when it fails.
func (r rentalRepo) Atomically(_ context.Context, fn func(store repository.RentalStore) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	before := make(map[uint]bool, len(r.s.rentals))
	for id := range r.s.rentals {
		before[id] = true
	}
	r.s.mu.Unlock()

	if err := fn(r); err != nil {
		r.s.mu.Lock()
		for id := range r.s.rentals {
			if !before[id] {
				delete(r.s.rentals, id)
			}
		}
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func (r rentalRepo) FindCustomerByID(_ context.Context, id uint) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findCustomerLocked(id)
}

func (r rentalRepo) FindGameByID(_ context.Context, id uint) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findGameLocked(id)
}

func (r rentalRepo) CountOpenRentals(_ context.Context, gameID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, r.s.err
	}
	return int64(r.s.openRentalsLocked(gameID)), nil
}

func (r rentalRepo) InsertRental(_ context.Context, rental *models.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	rental.ID = r.s.id("rentals")
	stored := *rental
	stored.Customer = nil
	stored.Game = nil
	r.s.rentals[rental.ID] = stored
	return nil
}

func (r rentalRepo) List(_ context.Context, filter models.RentalFilter) ([]models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []models.Rental{}
	for _, id := range sortedKeys(r.s.rentals) {
		rental := r.s.rentals[id]
		if filter.CustomerID != 0 && rental.CustomerID != filter.CustomerID {
			continue
		}
		if filter.GameID != 0 && rental.GameID != filter.GameID {
			continue
		}
		if c, ok := r.s.customers[rental.CustomerID]; ok {
			rental.Customer = &c
		}
		if g, ok := r.s.games[rental.GameID]; ok {
			if c, ok := r.s.categories[g.CategoryID]; ok {
				g.Category = &c
			}
			rental.Game = &g
		}
		out = append(out, rental)
	}
	return out, nil
}

// SeedReturned stores a rental that has already been returned, for tests
// that need closed rentals. Rentals cannot be returned through the API.
func (s *Store) SeedReturned(rental models.Rental) models.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rental.ReturnDate == nil {
		returned := rental.RentDate
		rental.ReturnDate = &returned
	}
	rental.ID = s.id("rentals")
	s.rentals[rental.ID] = rental
	return rental
}

// ---- stats ----

type statsRepo struct{ s *Store }

func (r statsRepo) CountCategories(_ context.Context) (int64, error) {
	return r.locked(func() int64 { return int64(len(r.s.categories)) })
}

func (r statsRepo) CountGames(_ context.Context) (int64, error) {
	return r.locked(func() int64 { return int64(len(r.s.games)) })
}

func (r statsRepo) CountCustomers(_ context.Context) (int64, error) {
	return r.locked(func() int64 { return int64(len(r.s.customers)) })
}

func (r statsRepo) SumStock(_ context.Context) (int64, error) {
	return r.locked(func() int64 {
		var total int64
		for _, g := range r.s.games {
			total += int64(g.StockTotal)
		}
		return total
	})
}

func (r statsRepo) CountAllOpenRentals(_ context.Context) (int64, error) {
	return r.locked(func() int64 {
		var n int64
		for _, rental := range r.s.rentals {
			if rental.IsOpen() {
				n++
			}
		}
		return n
	})
}

func (r statsRepo) locked(fn func() int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, r.s.err
	}
	return fn(), nil
}
