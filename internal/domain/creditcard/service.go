package creditcard

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) CreateCard(ctx context.Context, req *CreateCardRequest) (*CreditCard, error) {
	if err := s.validateCardRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	card := &CreditCard{
		Id:          pkg.GenerateULID(),
		Name:        strings.TrimSpace(req.Name),
		CreditLimit: req.CreditLimit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		Brand:       req.Brand,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repository.CreateCard(ctx, card); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return card, nil
}

func (s *Service) UpdateCard(ctx context.Context, cardID ulid.ULID, req *UpdateCardRequest) error {
	card, err := s.GetCardByID(ctx, cardID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		card.Name = name
	}

	if req.CreditLimit != nil {
		if *req.CreditLimit < 0 {
			return appErrors.NewValidationError("credit_limit", "deve ser maior ou igual a zero")
		}
		card.CreditLimit = *req.CreditLimit
	}

	if req.ClosingDay != nil {
		if *req.ClosingDay < 1 || *req.ClosingDay > 31 {
			return appErrors.NewValidationError("closing_day", "deve estar entre 1 e 31")
		}
		card.ClosingDay = *req.ClosingDay
	}

	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
		}
		card.DueDay = *req.DueDay
	}

	if req.Brand != nil {
		if !req.Brand.IsValid() {
			return appErrors.NewValidationError("brand", "bandeira inválida")
		}
		card.Brand = *req.Brand
	}

	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	card.UpdatedAt = time.Now()

	if err := s.Repository.UpdateCard(ctx, card); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteCard(ctx context.Context, cardID ulid.ULID) error {
	card, err := s.GetCardByID(ctx, cardID)
	if err != nil {
		return err
	}

	today := dateutil.Today()
	current, err := s.GetInvoice(ctx, card.Id, int(today.Month()), today.Year())
	if err == nil && current.Total > 0 && !current.Paid {
		return appErrors.NewValidationError("credit_card", "cartão possui fatura em aberto, não pode remover")
	}

	if err := s.Repository.DeleteCard(ctx, cardID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetCardByID(ctx context.Context, cardID ulid.ULID) (*CreditCard, error) {
	card, err := s.Repository.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	return card, nil
}

func (s *Service) ListCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error) {
	return s.Repository.GetCards(ctx, pagination)
}

// CreatePurchase lança uma compra no cartão, dividida em N parcelas mensais
// iguais. A divisão é exata em centavos: a última parcela absorve a sobra do
// arredondamento, de modo que a soma das parcelas é igual ao total.
func (s *Service) CreatePurchase(ctx context.Context, req *CreatePurchaseRequest) ([]*CardCharge, error) {
	card, err := s.GetCardByID(ctx, req.CardId)
	if err != nil {
		return nil, err
	}

	if !card.IsActive {
		return nil, appErrors.NewValidationError("credit_card", "cartão não está ativo")
	}

	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	amounts := splitInstallments(req.Amount, installments)

	now := time.Now()
	purchaseID := pkg.GenerateULID()
	firstDate := dateutil.Truncate(req.Date)

	charges := make([]*CardCharge, 0, installments)
	for i := 0; i < installments; i++ {
		description := strings.TrimSpace(req.Description)
		if installments > 1 {
			description = fmt.Sprintf("%s (%d/%d)", description, i+1, installments)
		}

		charges = append(charges, &CardCharge{
			Id:                 pkg.GenerateULID(),
			CardId:             req.CardId,
			CategoryId:         req.CategoryId,
			PurchaseId:         purchaseID,
			Amount:             amounts[i],
			Description:        description,
			Date:               dateutil.AddMonths(firstDate, i),
			Installments:       installments,
			CurrentInstallment: i + 1,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}

	if err := s.Repository.CreateCharges(ctx, charges); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return charges, nil
}

func (s *Service) DeletePurchase(ctx context.Context, purchaseID ulid.ULID) error {
	if err := s.Repository.DeletePurchase(ctx, purchaseID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) ListCharges(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*CardCharge, int64, error) {
	if _, err := s.GetCardByID(ctx, cardID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetChargesByCard(ctx, cardID, pagination)
}

// GetInvoice recalcula a fatura de referência (mês, ano) a partir das
// parcelas na janela (fechamento anterior, fechamento atual].
func (s *Service) GetInvoice(ctx context.Context, cardID ulid.ULID, month, year int) (*Invoice, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	card, err := s.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	opening, closing := BillingWindow(card.ClosingDay, time.Month(month), year)

	charges, err := s.Repository.GetChargesInWindow(ctx, cardID, opening, closing)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	total := 0.0
	for _, charge := range charges {
		total += charge.Amount
	}

	invoice := &Invoice{
		CardId:      cardID,
		Month:       month,
		Year:        year,
		OpeningDate: opening,
		ClosingDate: closing,
		DueDate:     DueDate(card.DueDay, card.ClosingDay, time.Month(month), year),
		Total:       total,
		Charges:     charges,
	}

	payment, err := s.Repository.GetPayment(ctx, cardID, month, year)
	if err == nil && payment != nil {
		invoice.Paid = true
		invoice.PaidAt = &payment.PaidAt
	}

	return invoice, nil
}

func (s *Service) GetCurrentInvoice(ctx context.Context, cardID ulid.ULID) (*Invoice, error) {
	card, err := s.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	today := dateutil.Today()
	month, year := InvoiceReference(today, card.ClosingDay)
	return s.GetInvoice(ctx, cardID, int(month), year)
}

// PayInvoice marca a fatura de referência como paga. Operação única por
// (cartão, mês, ano).
func (s *Service) PayInvoice(ctx context.Context, cardID ulid.ULID, month, year int) (*Invoice, error) {
	invoice, err := s.GetInvoice(ctx, cardID, month, year)
	if err != nil {
		return nil, err
	}

	if invoice.Paid {
		return nil, appErrors.NewValidationError("invoice", "fatura já está paga")
	}

	payment := &InvoicePayment{
		Id:        pkg.GenerateULID(),
		CardId:    cardID,
		Month:     month,
		Year:      year,
		PaidAt:    time.Now(),
		CreatedAt: time.Now(),
	}

	if err := s.Repository.SavePayment(ctx, payment); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	invoice.Paid = true
	invoice.PaidAt = &payment.PaidAt
	return invoice, nil
}

// UnpayInvoice desfaz a marcação de pagamento da fatura de referência.
func (s *Service) UnpayInvoice(ctx context.Context, cardID ulid.ULID, month, year int) error {
	invoice, err := s.GetInvoice(ctx, cardID, month, year)
	if err != nil {
		return err
	}

	if !invoice.Paid {
		return appErrors.NewValidationError("invoice", "fatura não está paga")
	}

	if err := s.Repository.DeletePayment(ctx, cardID, month, year); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// splitInstallments divide o total em n parcelas de centavos exatos.
func splitInstallments(total float64, n int) []float64 {
	totalDec := decimal.NewFromFloat(total).Round(2)
	per := totalDec.Div(decimal.NewFromInt(int64(n))).Round(2)

	amounts := make([]float64, n)
	sum := decimal.Zero
	for i := 0; i < n-1; i++ {
		amounts[i], _ = per.Float64()
		sum = sum.Add(per)
	}
	last, _ := totalDec.Sub(sum).Float64()
	amounts[n-1] = last
	return amounts
}

func (s *Service) validateCardRequest(req *CreateCardRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	if req.CreditLimit <= 0 {
		return appErrors.NewValidationError("credit_limit", "deve ser maior que zero")
	}

	if req.ClosingDay < 1 || req.ClosingDay > 31 {
		return appErrors.NewValidationError("closing_day", "deve estar entre 1 e 31")
	}

	if req.DueDay < 1 || req.DueDay > 31 {
		return appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
	}

	if !req.Brand.IsValid() {
		return appErrors.NewValidationError("brand", "bandeira inválida")
	}

	return nil
}

type CreateCardRequest struct {
	Name        string
	CreditLimit float64
	ClosingDay  int
	DueDay      int
	Brand       CardBrand
}

type UpdateCardRequest struct {
	Name        *string
	CreditLimit *float64
	ClosingDay  *int
	DueDay      *int
	Brand       *CardBrand
	IsActive    *bool
}

type CreatePurchaseRequest struct {
	CardId       ulid.ULID
	CategoryId   ulid.ULID
	Amount       float64
	Description  string
	Date         time.Time
	Installments int
}
