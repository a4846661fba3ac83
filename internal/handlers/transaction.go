package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"riskledger/internal/services/ledger"
	"riskledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	ledger ledger.Service
}

func NewTransactionHandler(ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{ledger: ledgerService}
}

type addTransactionRequest struct {
	Username string `form:"username" json:"username"`
	Amount   string `form:"amount" json:"amount"`
	Location string `form:"location" json:"location"`
	Device   string `form:"device" json:"device"`
}

// AddTransaction appends a transaction and reports the risk it was given.
func (h *TransactionHandler) AddTransaction(c *fiber.Ctx) error {
	var input addTransactionRequest
	if err := c.BodyParser(&input); err != nil {
		return response.ValidationError(c, "body", "is malformed")
	}

	raw := strings.TrimSpace(input.Amount)
	if raw == "" {
		return response.ValidationError(c, "amount", "must not be empty")
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return response.ValidationError(c, "amount", "must be a number")
	}

	tx, err := h.ledger.Append(c.UserContext(), ledger.AppendInput{
		Username: input.Username,
		Amount:   amount,
		Location: input.Location,
		Device:   input.Device,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Transaction added.", fiber.Map{
		"risk": tx.Risk,
	})
}

// GetTransactions lists a user's transactions, most recent first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	username, err := url.PathUnescape(c.Params("username"))
	if err != nil {
		return response.ValidationError(c, "username", "is malformed")
	}

	transactions, err := h.ledger.ListByUser(c.UserContext(), username)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Transactions retrieved.", fiber.Map{
		"transactions": transactions,
	})
}

// GetSummary returns the user's transaction counts per risk band.
func (h *TransactionHandler) GetSummary(c *fiber.Ctx) error {
	username, err := url.PathUnescape(c.Params("username"))
	if err != nil {
		return response.ValidationError(c, "username", "is malformed")
	}

	summary, err := h.ledger.Summary(c.UserContext(), username)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Summary retrieved.", fiber.Map{
		"summary": summary,
	})
}
