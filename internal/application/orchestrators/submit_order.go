package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "naphtha/internal/domain/submission"
)

// OrderStoreForSubmit defines the store interface needed by SubmitOrder.
type OrderStoreForSubmit interface {
	Insert(ctx context.Context, o domain.Order) (int64, error)
}

// OrderInput carries the posted order form.
type OrderInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Postcode  string
	Message   string
	PageURL   string
}

// SubmitOrderDeps holds dependencies for SubmitOrder.
type SubmitOrderDeps struct {
	OrderStore OrderStoreForSubmit
	Now        func() time.Time
}

// ExecuteSubmitOrder validates an order request and appends it.
// PRE: none; input comes straight from the form
// POST: on success exactly one row is inserted and its id returned;
// on a blank required field the error wraps submission.ErrMissingField and nothing is written
func ExecuteSubmitOrder(ctx context.Context, input OrderInput, deps SubmitOrderDeps) (int64, error) {
	o := domain.NewOrder(domain.Fields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Postcode:  input.Postcode,
		Message:   input.Message,
		PageURL:   input.PageURL,
	}, clock(deps.Now)())

	if err := o.Validate(); err != nil {
		slog.Info("submission_rejected", "kind", domain.KindOrder, "reason", err.Error())
		return 0, fmt.Errorf("validation: %w", err)
	}

	id, err := deps.OrderStore.Insert(ctx, o)
	if err != nil {
		return 0, fmt.Errorf("failed to save order submission: %w", err)
	}

	slog.Info("submission_received", "kind", domain.KindOrder, "id", id, "page_url", o.PageURL)
	return id, nil
}
