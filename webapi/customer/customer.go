package customer

import (
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/middleware"
	accountsvc "github.com/amirasaad/digitalbank/pkg/service/account"
	customersvc "github.com/amirasaad/digitalbank/pkg/service/customer"
	accountapi "github.com/amirasaad/digitalbank/webapi/account"
	"github.com/amirasaad/digitalbank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the customer registry endpoints. All routes require a
// valid bearer token.
//
// Routes:
//   - GET    /customers                  : List customers.
//   - POST   /customers                  : Register a customer.
//   - GET    /customers/:taxId           : Find a customer by tax id.
//   - PUT    /customers/:taxId           : Replace name and tax id.
//   - DELETE /customers/:taxId           : Delete a customer and its accounts.
//   - GET    /customers/:taxId/accounts  : List the customer's accounts.
func Routes(
	app *fiber.App,
	customerSvc *customersvc.Service,
	accountSvc *accountsvc.Service,
	cfg *config.Jwt,
) {
	protected := middleware.JwtProtected(cfg)
	app.Get("/customers", protected, List(customerSvc))
	app.Post("/customers", protected, Register(customerSvc))
	app.Get("/customers/:taxId", protected, FindByTaxID(customerSvc))
	app.Put("/customers/:taxId", protected, Update(customerSvc))
	app.Delete("/customers/:taxId", protected, Delete(customerSvc))
	app.Get("/customers/:taxId/accounts", protected, ListAccounts(accountSvc))
}

// Register creates a customer. A tax id already on file yields 409.
func Register(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := customerSvc.Register(c.UserContext(), input.Name, input.TaxID)
		if err != nil {
			log.Errorf("Failed to register customer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to register customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer registered", toCustomerDTO(cust))
	}
}

func List(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := customerSvc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list customers", err)
		}
		dtos := make([]CustomerDTO, 0, len(all))
		for _, cust := range all {
			dtos = append(dtos, toCustomerDTO(cust))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customers fetched", dtos)
	}
}

func FindByTaxID(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cust, err := customerSvc.FindByTaxID(c.UserContext(), c.Params("taxId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to find customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer fetched", toCustomerDTO(cust))
	}
}

// Update replaces the name and tax id of the customer at :taxId.
func Update(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		cust, err := customerSvc.Update(c.UserContext(), c.Params("taxId"), input.Name, input.TaxID)
		if err != nil {
			log.Errorf("Failed to update customer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to update customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer updated", toCustomerDTO(cust))
	}
}

// Delete removes the customer and every account it owns.
func Delete(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		taxID := c.Params("taxId")
		if err := customerSvc.Delete(c.UserContext(), taxID); err != nil {
			log.Errorf("Failed to delete customer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to delete customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer deleted", fiber.Map{"tax_id": taxID})
	}
}

func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := accountSvc.ListByTaxID(c.UserContext(), c.Params("taxId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", accountapi.ToAccountDTOs(accounts))
	}
}
