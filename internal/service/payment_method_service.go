package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

// PaymentMethodService serves the global list of payment methods.
type PaymentMethodService struct {
	gw gateway.Gateway
}

func NewPaymentMethodService(gw gateway.Gateway) *PaymentMethodService {
	return &PaymentMethodService{gw: gw}
}

type CreatePaymentMethodInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (s *PaymentMethodService) List(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	if err := s.gw.Query(ctx, gateway.PaymentMethods, gateway.Filter{}, gateway.OrderBy(gateway.Asc("name")), &methods); err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	if methods == nil {
		methods = []model.PaymentMethod{}
	}
	return methods, nil
}

// Create adds a payment method. Names are unique; a duplicate is a conflict.
func (s *PaymentMethodService) Create(ctx context.Context, input CreatePaymentMethodInput) (*model.PaymentMethod, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	values := gateway.Values{
		"name":        strings.TrimSpace(input.Name),
		"description": strings.TrimSpace(input.Description),
	}
	var pm model.PaymentMethod
	if err := s.gw.Insert(ctx, gateway.PaymentMethods, values, &pm); err != nil {
		return nil, fmt.Errorf("creating payment method: %w", err)
	}
	return &pm, nil
}
