package payments

import "context"

// LineItem is one purchasable line sent to the hosted payment page.
// UnitAmount is in the currency's smallest unit.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// SessionParams describes the checkout session to create. OrderID and
// UserID travel as metadata so the provider's completion callback can
// be correlated with the order.
type SessionParams struct {
	Items      []LineItem
	SuccessURL string
	CancelURL  string
	OrderID    string
	UserID     string
}

// Session is the provider's handle for an in-progress checkout.
type Session struct {
	ID  string
	URL string
}

// Provider creates hosted payment sessions. Completion reporting is
// out-of-band; the core only stores the session id.
type Provider interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}
