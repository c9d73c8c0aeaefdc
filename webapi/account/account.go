package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/middleware"
	accountsvc "github.com/amirasaad/digitalbank/pkg/service/account"
	"github.com/amirasaad/digitalbank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Routes registers HTTP routes for account operations. All routes require a
// valid bearer token.
//
// Routes:
//   - POST   /accounts                 : Open an account for a customer.
//   - GET    /accounts/:id             : Retrieve an account.
//   - POST   /accounts/:id/deposit     : Deposit funds.
//   - POST   /accounts/:id/withdraw    : Withdraw funds.
//   - POST   /accounts/:id/transfer    : Transfer funds to another account.
//   - GET    /accounts/:id/interest    : Simulate savings interest up to ?date=YYYY-MM-DD.
//   - GET    /accounts/:id/history     : List ledger entries, newest first.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, cfg *config.Jwt) {
	protected := middleware.JwtProtected(cfg)
	app.Post("/accounts", protected, CreateAccount(accountSvc))
	app.Get("/accounts/:id", protected, GetAccount(accountSvc))
	app.Post("/accounts/:id/deposit", protected, Deposit(accountSvc))
	app.Post("/accounts/:id/withdraw", protected, Withdraw(accountSvc))
	app.Post("/accounts/:id/transfer", protected, Transfer(accountSvc))
	app.Get("/accounts/:id/interest", protected, SimulateInterest(accountSvc))
	app.Get("/accounts/:id/history", protected, History(accountSvc))
}

// CreateAccount opens a checking or savings account for the customer in the
// body. The kind accepts "checking", "savings" and the short codes "CC", "CP".
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		customerID := uuid.MustParse(input.CustomerID)
		a, err := accountSvc.CreateAccount(c.UserContext(), customerID, input.Kind)
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		log.Infof("Account created: %s (%s) by %s", a.ID, a.Kind, middleware.Subject(c))
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		a, err := accountSvc.Get(c.UserContext(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}

// Deposit adds the body amount to the account balance and records a DEPOSIT entry.
func Deposit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Deposit(c.UserContext(), accountID, *input.Amount)
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", ToAccountDTO(a))
	}
}

// Withdraw subtracts the body amount from the account balance and records a
// WITHDRAWAL entry. Overdrafts fail with 422.
func Withdraw(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Withdraw(c.UserContext(), accountID, *input.Amount)
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", ToAccountDTO(a))
	}
}

// Transfer moves the body amount from the path account to destination_account_id.
func Transfer(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sourceID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		destID := uuid.MustParse(input.DestinationAccountID)
		source, dest, err := accountSvc.Transfer(c.UserContext(), sourceID, *input.Amount, destID)
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", TransferDTO{
			Source:      ToAccountDTO(source),
			Destination: ToAccountDTO(dest),
		})
	}
}

// SimulateInterest projects a savings balance to the date query parameter.
// Nothing is persisted.
func SimulateInterest(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		raw := c.Query("date")
		target, err := time.Parse(dateLayout, raw)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid date",
				fmt.Errorf("%w: %q", account.ErrInvalidDate, raw),
				"date must use the YYYY-MM-DD format",
			)
		}
		projection, err := accountSvc.SimulateInterest(c.UserContext(), accountID, target)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to simulate interest", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Interest simulated", ToInterestDTO(projection))
	}
}

// History lists the ledger entries in which the account is origin or destination.
func History(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		entries, err := accountSvc.History(c.UserContext(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list history", err)
		}
		dtos := make([]HistoryEntryDTO, 0, len(entries))
		for _, e := range entries {
			dtos = append(dtos, toHistoryEntryDTO(e))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched", dtos)
	}
}
