package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/repository/repotest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rentalFixture struct {
	store    *repotest.Store
	svc      RentalService
	customer models.Customer
	game     models.Game
}

func newRentalFixture(t *testing.T, stock int) rentalFixture {
	store := repotest.New()
	category := seedCategory(t, store, "Strategy")
	return rentalFixture{
		store:    store,
		svc:      NewRentalService(store.Rentals(), clock),
		customer: seedCustomer(t, store, "Ana Souza", "12345678901"),
		game:     seedGame(t, store, category.ID, "Catan", stock, "10.00"),
	}
}

func TestCreateRental(t *testing.T) {
	f := newRentalFixture(t, 2)

	rental, err := f.svc.Create(context.Background(), models.RentalInput{
		CustomerID: f.customer.ID,
		GameID:     f.game.ID,
		DaysRented: 3,
	})
	require.NoError(t, err)

	assert.NotZero(t, rental.ID)
	assert.Equal(t, f.customer.ID, rental.CustomerID)
	assert.Equal(t, f.game.ID, rental.GameID)
	assert.Equal(t, 3, rental.DaysRented)
	assert.True(t, decimal.RequireFromString("30.00").Equal(rental.OriginalPrice), "got %s", rental.OriginalPrice)
	assert.Equal(t, "2024-03-09", rental.RentDate.String())
	assert.Nil(t, rental.ReturnDate)
	assert.False(t, rental.DelayFee.Valid)
	assert.Equal(t, 1, f.store.RentalCount())
}

func TestCreateRentalRejections(t *testing.T) {
	tests := []struct {
		name  string
		input func(f rentalFixture) models.RentalInput
		kind  apierror.Kind
		field string
	}{
		{
			name: "unknown customer",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: 999, GameID: f.game.ID, DaysRented: 3}
			},
			kind:  apierror.KindNotFound,
			field: "customer",
		},
		{
			name: "unknown game",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: f.customer.ID, GameID: 999, DaysRented: 3}
			},
			kind:  apierror.KindNotFound,
			field: "game",
		},
		{
			name: "zero days",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: f.customer.ID, GameID: f.game.ID, DaysRented: 0}
			},
			kind:  apierror.KindInvalid,
			field: "daysRented",
		},
		{
			name: "negative days",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: f.customer.ID, GameID: f.game.ID, DaysRented: -2}
			},
			kind:  apierror.KindInvalid,
			field: "daysRented",
		},
		{
			name: "price overflows the money column",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: f.customer.ID, GameID: f.game.ID, DaysRented: 2000000000}
			},
			kind:  apierror.KindInvalid,
			field: "daysRented",
		},
		{
			name: "missing references win over bad days",
			input: func(f rentalFixture) models.RentalInput {
				return models.RentalInput{CustomerID: 999, GameID: f.game.ID, DaysRented: 0}
			},
			kind:  apierror.KindNotFound,
			field: "customer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRentalFixture(t, 1)

			rental, err := f.svc.Create(context.Background(), tt.input(f))
			require.Error(t, err)
			assert.Nil(t, rental)

			apiErr, ok := apierror.As(err)
			require.True(t, ok, "expected an API error, got %v", err)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.field, apiErr.Field)
			assert.Zero(t, f.store.RentalCount())
		})
	}
}

func TestCreateRentalSingleCopy(t *testing.T) {
	f := newRentalFixture(t, 1)
	in := models.RentalInput{CustomerID: f.customer.ID, GameID: f.game.ID, DaysRented: 2}

	_, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindConflict))
	assert.Equal(t, 1, f.store.RentalCount())
	assert.Equal(t, 1, f.store.OpenRentals(f.game.ID))
}

func TestCreateRentalIgnoresReturnedCopies(t *testing.T) {
	f := newRentalFixture(t, 1)
	f.store.SeedReturned(models.Rental{
		CustomerID:    f.customer.ID,
		GameID:        f.game.ID,
		RentDate:      models.NewDate(fixedNow.AddDate(0, 0, -10)),
		DaysRented:    3,
		OriginalPrice: decimal.RequireFromString("30.00"),
	})

	_, err := f.svc.Create(context.Background(), models.RentalInput{
		CustomerID: f.customer.ID,
		GameID:     f.game.ID,
		DaysRented: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.RentalCount())
	assert.Equal(t, 1, f.store.OpenRentals(f.game.ID))
}

func TestCreateRentalNeverOverallocates(t *testing.T) {
	const stock = 3
	f := newRentalFixture(t, stock)
	in := models.RentalInput{CustomerID: f.customer.ID, GameID: f.game.ID, DaysRented: 1}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apierror.Is(err, apierror.KindConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, created)
	assert.Equal(t, 20-stock, conflicts)
	assert.Equal(t, stock, f.store.OpenRentals(f.game.ID))
}

func TestCreateRentalStoreFailure(t *testing.T) {
	f := newRentalFixture(t, 1)
	f.store.FailWith(errors.New("connection reset by peer"))

	_, err := f.svc.Create(context.Background(), models.RentalInput{
		CustomerID: f.customer.ID,
		GameID:     f.game.ID,
		DaysRented: 1,
	})
	require.Error(t, err)
	_, isAPIError := apierror.As(err)
	assert.False(t, isAPIError)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestListRentals(t *testing.T) {
	f := newRentalFixture(t, 5)
	other := seedCustomer(t, f.store, "Bruno Lima", "98765432100")

	for _, customerID := range []uint{f.customer.ID, other.ID, f.customer.ID} {
		_, err := f.svc.Create(context.Background(), models.RentalInput{
			CustomerID: customerID,
			GameID:     f.game.ID,
			DaysRented: 1,
		})
		require.NoError(t, err)
	}

	all, err := f.svc.List(context.Background(), models.RentalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.RentalCustomer{ID: f.customer.ID, Name: "Ana Souza"}, all[0].Customer)
	assert.Equal(t, models.RentalGame{
		ID:           f.game.ID,
		Name:         "Catan",
		CategoryID:   f.game.CategoryID,
		CategoryName: "Strategy",
	}, all[0].Game)

	mine, err := f.svc.List(context.Background(), models.RentalFilter{CustomerID: other.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Bruno Lima", mine[0].Customer.Name)

	none, err := f.svc.List(context.Background(), models.RentalFilter{GameID: 999})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRentalPrice(t *testing.T) {
	assert.Equal(t, "30", RentalPrice(decimal.RequireFromString("10.00"), 3).String())
	assert.Equal(t, "22.47", RentalPrice(decimal.RequireFromString("7.49"), 3).String())
}

func TestDefaultClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, utcNow().Location())

	svc := NewRentalService(repotest.New().Rentals(), nil).(*rentalService)
	assert.Equal(t, time.UTC, svc.now().Location())
}
