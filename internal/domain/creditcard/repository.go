package creditcard

import (
	"context"
	"time"

	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateCard(ctx context.Context, card *CreditCard) error
	UpdateCard(ctx context.Context, card *CreditCard) error
	DeleteCard(ctx context.Context, cardID ulid.ULID) error
	GetCardByID(ctx context.Context, cardID ulid.ULID) (*CreditCard, error)
	GetCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error)

	CreateCharges(ctx context.Context, charges []*CardCharge) error
	DeletePurchase(ctx context.Context, purchaseID ulid.ULID) error
	GetChargesInWindow(ctx context.Context, cardID ulid.ULID, opening, closing time.Time) ([]*CardCharge, error)
	GetChargesByCard(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*CardCharge, int64, error)

	GetPayment(ctx context.Context, cardID ulid.ULID, month, year int) (*InvoicePayment, error)
	SavePayment(ctx context.Context, payment *InvoicePayment) error
	DeletePayment(ctx context.Context, cardID ulid.ULID, month, year int) error

	ReplaceAllCards(ctx context.Context, cards []*CreditCard) error
	ReplaceAllCharges(ctx context.Context, charges []*CardCharge) error
}
