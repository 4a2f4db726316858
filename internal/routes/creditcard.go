package routes

import (
	"net/http"

	"Fluxo/internal/contracts"
	"Fluxo/internal/domain/creditcard"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCreditCard(c *gin.Context) {
	var body contracts.CreditCardCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.CreateCard(ctx, &creditcard.CreateCardRequest{
		Name:        body.Name,
		CreditLimit: body.CreditLimit,
		ClosingDay:  body.ClosingDay,
		DueDay:      body.DueDay,
		Brand:       creditcard.CardBrand(body.Brand),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CreditCardCreateResponse{
		Message: "Cartão criado com sucesso",
		Card:    card,
	})
}

func (h *Handler) ListCreditCards(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	cards, total, err := h.CreditCardService.ListCards(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CreditCardListResponse{
		Cards: cards,
		Total: total,
	})
}

func (h *Handler) GetCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.GetCardByID(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CreditCardSingleResponse{Card: card})
}

func (h *Handler) UpdateCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.CreditCardUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &creditcard.UpdateCardRequest{
		Name:        body.Name,
		CreditLimit: body.CreditLimit,
		ClosingDay:  body.ClosingDay,
		DueDay:      body.DueDay,
		IsActive:    body.IsActive,
	}

	if body.Brand != nil {
		brand := creditcard.CardBrand(*body.Brand)
		req.Brand = &brand
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.UpdateCard(ctx, cardID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cartão atualizado com sucesso"})
}

func (h *Handler) DeleteCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.DeleteCard(ctx, cardID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cartão removido com sucesso"})
}

func (h *Handler) CreatePurchase(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.PurchaseCreateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	date, err := dateutil.ParseDay(body.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	charges, err := h.CreditCardService.CreatePurchase(ctx, &creditcard.CreatePurchaseRequest{
		CardId:       cardID,
		CategoryId:   categoryID,
		Amount:       body.Amount,
		Description:  body.Description,
		Date:         date,
		Installments: body.Installments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PurchaseCreateResponse{
		Message: "Compra lançada com sucesso",
		Charges: charges,
	})
}

func (h *Handler) DeletePurchase(c *gin.Context) {
	purchaseID, err := pkg.ParseULID(c.Param("purchase_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("purchase_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.DeletePurchase(ctx, purchaseID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Compra removida com sucesso"})
}

func (h *Handler) ListCharges(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	charges, total, err := h.CreditCardService.ListCharges(ctx, cardID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ChargeListResponse{
		Charges: charges,
		Total:   total,
	})
}

func (h *Handler) GetInvoice(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()

	if c.Query("month") == "" && c.Query("year") == "" {
		invoice, err := h.CreditCardService.GetCurrentInvoice(ctx, cardID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, contracts.InvoiceResponse{Invoice: invoice})
		return
	}

	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invoice, err := h.CreditCardService.GetInvoice(ctx, cardID, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceResponse{Invoice: invoice})
}

func (h *Handler) PayInvoice(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	invoice, err := h.CreditCardService.PayInvoice(ctx, cardID, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoicePayResponse{
		Message: "Fatura paga com sucesso",
		Invoice: invoice,
	})
}

func (h *Handler) UnpayInvoice(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.UnpayInvoice(ctx, cardID, month, year); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pagamento da fatura estornado"})
}

func (h *Handler) GetCardDate(c *gin.Context) {
	// Referência de fatura para uma data arbitrária, útil para o front prever
	// em qual fatura uma compra vai cair.
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	raw := c.Query("date")
	if raw == "" {
		h.respondError(c, appErrors.NewValidationError("date", "é obrigatória"))
		return
	}

	date, err := dateutil.ParseDay(raw)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.GetCardByID(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	month, year := creditcard.InvoiceReference(date, card.ClosingDay)
	c.JSON(http.StatusOK, gin.H{"month": int(month), "year": year})
}
