package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

func TestPaymentMethodService_List_Empty(t *testing.T) {
	t.Parallel()
	gw := new(mockGateway)
	svc := NewPaymentMethodService(gw)
	ctx, _ := userContext(t)

	gw.On("Query", ctx, gateway.PaymentMethods, gateway.Filter{}, gateway.OrderBy(gateway.Asc("name")), mock.Anything).Return(nil)

	methods, err := svc.List(ctx)

	require.NoError(t, err)
	assert.NotNil(t, methods)
	assert.Empty(t, methods)
}

func TestPaymentMethodService_Create_Duplicate(t *testing.T) {
	t.Parallel()
	gw := new(mockGateway)
	svc := NewPaymentMethodService(gw)
	ctx, _ := userContext(t)

	gwErr := &gateway.Error{Op: "insert", Entity: "payment_methods", Err: apperror.Conflict("payment method already exists")}
	gw.On("Insert", ctx, gateway.PaymentMethods, gateway.Values{"name": "UPI", "description": ""}, mock.Anything).Return(gwErr)

	pm, err := svc.Create(ctx, CreatePaymentMethodInput{Name: " UPI "})

	assert.Nil(t, pm)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, 409, apperror.GetStatusCode(err))
}

func TestPaymentMethodService_Create(t *testing.T) {
	t.Parallel()
	gw := new(mockGateway)
	svc := NewPaymentMethodService(gw)
	ctx, _ := userContext(t)

	gw.On("Insert", ctx, gateway.PaymentMethods, mock.Anything, mock.Anything).
		Return(nil).Run(fill(insertDest, model.PaymentMethod{Name: "Wallet"}))

	pm, err := svc.Create(ctx, CreatePaymentMethodInput{Name: "Wallet", Description: "Prepaid wallets"})

	require.NoError(t, err)
	assert.Equal(t, "Wallet", pm.Name)

	_, err = svc.Create(ctx, CreatePaymentMethodInput{})
	assert.Equal(t, "Name is required", apperror.GetMessage(err))
}
