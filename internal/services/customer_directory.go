package services

import (
	"context"
	"errors"

	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/metrics"
	"house-preview-backend/internal/models"
)

// CustomerDirectory resolves submitters to customer records by phone.
type CustomerDirectory struct{}

func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{}
}

// ResolveOrCreate returns the customer with the submitted phone, creating it
// when none exists. An existing customer is returned unchanged even when the
// submitted name or address differ: the first submission wins.
//
// The lookup and the insert are separate statements and phone carries no
// unique constraint, so concurrent submissions for the same unseen phone
// can both create a customer.
func (d *CustomerDirectory) ResolveOrCreate(ctx context.Context, store CustomerStore, in models.CustomerInput) (*models.Customer, bool, error) {
	existing, err := store.FindCustomerByPhone(ctx, in.Phone)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrRecordNotFound) {
		return nil, false, &PersistenceError{Op: "find customer", Err: err}
	}

	customer := &models.Customer{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		return nil, false, &PersistenceError{Op: "create customer", Err: err}
	}

	metrics.CustomersCreated.Inc()
	logging.Ctx(ctx).Info().Int64("customer_id", customer.ID).Msg("customer created")
	return customer, true, nil
}
