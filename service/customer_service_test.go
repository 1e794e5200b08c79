package service

import (
	"context"
	"testing"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerInput(t *testing.T, name, cpf string) models.CustomerInput {
	t.Helper()
	birthday, err := models.ParseDate("1985-12-01")
	require.NoError(t, err)
	return models.CustomerInput{Name: name, Phone: "2133334444", CPF: cpf, Birthday: birthday}
}

func TestCreateCustomerDuplicateCPF(t *testing.T) {
	store := repotest.New()
	svc := NewCustomerService(store.Customers())

	_, err := svc.Create(context.Background(), customerInput(t, "Ana", "11111111111"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), customerInput(t, "Other Ana", "11111111111"))
	assert.True(t, apierror.Is(err, apierror.KindConflict))
}

func TestGetCustomer(t *testing.T) {
	store := repotest.New()
	svc := NewCustomerService(store.Customers())
	created, err := svc.Create(context.Background(), customerInput(t, "Ana", "11111111111"))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	_, err = svc.Get(context.Background(), created.ID+1)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func TestUpdateCustomer(t *testing.T) {
	store := repotest.New()
	svc := NewCustomerService(store.Customers())
	ana, err := svc.Create(context.Background(), customerInput(t, "Ana", "11111111111"))
	require.NoError(t, err)
	bruno, err := svc.Create(context.Background(), customerInput(t, "Bruno", "22222222222"))
	require.NoError(t, err)

	t.Run("keeps own cpf", func(t *testing.T) {
		in := customerInput(t, "Ana Maria", "11111111111")
		in.Phone = "21999998888"
		updated, err := svc.Update(context.Background(), ana.ID, in)
		require.NoError(t, err)
		assert.Equal(t, ana.ID, updated.ID)
		assert.Equal(t, "Ana Maria", updated.Name)
		assert.Equal(t, "21999998888", updated.Phone)
	})

	t.Run("cpf of another customer", func(t *testing.T) {
		_, err := svc.Update(context.Background(), ana.ID, customerInput(t, "Ana", "22222222222"))
		assert.True(t, apierror.Is(err, apierror.KindConflict))

		gotAna, err := svc.Get(context.Background(), ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "11111111111", gotAna.CPF)
		gotBruno, err := svc.Get(context.Background(), bruno.ID)
		require.NoError(t, err)
		assert.Equal(t, *bruno, *gotBruno)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 404, customerInput(t, "Nobody", "33333333333"))
		assert.True(t, apierror.Is(err, apierror.KindNotFound))
	})
}

func TestListCustomersByCPFPrefix(t *testing.T) {
	store := repotest.New()
	svc := NewCustomerService(store.Customers())
	for _, cpf := range []string{"12300000000", "12399999999", "45600000000"} {
		_, err := svc.Create(context.Background(), customerInput(t, "C"+cpf, cpf))
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), "123")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
