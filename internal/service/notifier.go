package service

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type notifier interface {
	Notify(ctx context.Context, event entity.Event) error
}

// NotifierFunc adapts a plain function to the notifier contract.
type NotifierFunc func(ctx context.Context, event entity.Event) error

func (that NotifierFunc) Notify(ctx context.Context, event entity.Event) error {
	return that(ctx, event)
}

// Notifiers delivers each event to every notifier in order.
// All of them are called even if one fails; the failures are joined.
type Notifiers []notifier

func NewNotifiers(notifiers ...notifier) Notifiers {
	out := make(Notifiers, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (that Notifiers) Notify(ctx context.Context, event entity.Event) error {
	var errs []error
	for _, n := range that {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
