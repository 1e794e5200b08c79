package service

import (
	"context"
	"testing"
	"time"

	"gamerental/models"
	"gamerental/repository/repotest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 9, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seedCategory(t *testing.T, store *repotest.Store, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, store.Categories().Create(context.Background(), &c))
	return c
}

func seedGame(t *testing.T, store *repotest.Store, categoryID uint, name string, stock int, price string) models.Game {
	t.Helper()
	g := models.Game{
		Name:        name,
		Image:       "https://img.example.com/" + name + ".png",
		StockTotal:  stock,
		CategoryID:  categoryID,
		PricePerDay: decimal.RequireFromString(price),
	}
	require.NoError(t, store.Games().Create(context.Background(), &g))
	return g
}

func seedCustomer(t *testing.T, store *repotest.Store, name, cpf string) models.Customer {
	t.Helper()
	birthday, err := models.ParseDate("1991-07-04")
	require.NoError(t, err)
	c := models.Customer{Name: name, Phone: "11987654321", CPF: cpf, Birthday: birthday}
	require.NoError(t, store.Customers().Create(context.Background(), &c))
	return c
}
