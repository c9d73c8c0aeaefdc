package account

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	accountsvc "github.com/amirasaad/digitalbank/pkg/service/account"
)

//revive:disable

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Kind       string `json:"kind" validate:"required,min=2,max=16"`
}

// AmountRequest is the body of deposit and withdraw.
type AmountRequest struct {
	Amount *money.Money `json:"amount" validate:"required"`
}

// TransferRequest represents the request body for transferring funds between accounts.
type TransferRequest struct {
	Amount               *money.Money `json:"amount" validate:"required"`
	DestinationAccountID string       `json:"destination_account_id" validate:"required,uuid"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Kind       string      `json:"kind"`
	Code       string      `json:"code"`
	Balance    money.Money `json:"balance"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TransferDTO holds both sides of a completed transfer.
type TransferDTO struct {
	Source      AccountDTO `json:"source"`
	Destination AccountDTO `json:"destination"`
}

// InterestDTO is the result of an interest simulation.
type InterestDTO struct {
	AccountID        string      `json:"account_id"`
	TargetDate       string      `json:"target_date"`
	MonthlyRate      string      `json:"monthly_rate"`
	Balance          money.Money `json:"balance"`
	ProjectedBalance money.Money `json:"projected_balance"`
}

// HistoryEntryDTO is the API response representation of a ledger entry.
type HistoryEntryDTO struct {
	ID                   string      `json:"id"`
	Kind                 string      `json:"kind"`
	Amount               money.Money `json:"amount"`
	OriginAccountID      string      `json:"origin_account_id"`
	DestinationAccountID *string     `json:"destination_account_id,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

//revive:enable

// ToAccountDTO maps a domain account to its response form.
func ToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:         a.ID.String(),
		CustomerID: a.CustomerID.String(),
		Kind:       a.Kind.String(),
		Code:       a.Kind.Code(),
		Balance:    a.Balance,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToAccountDTOs maps a slice of accounts.
func ToAccountDTOs(accounts []*account.Account) []AccountDTO {
	out := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountDTO(a))
	}
	return out
}

// ToInterestDTO maps a projection to its response form.
func ToInterestDTO(p accountsvc.InterestProjection) InterestDTO {
	return InterestDTO{
		AccountID:        p.AccountID.String(),
		TargetDate:       p.Target.Format(dateLayout),
		MonthlyRate:      p.MonthlyRate.String(),
		Balance:          p.Balance,
		ProjectedBalance: p.Projected,
	}
}

func toHistoryEntryDTO(e *account.HistoryEntry) HistoryEntryDTO {
	dto := HistoryEntryDTO{
		ID:              e.ID.String(),
		Kind:            string(e.Kind),
		Amount:          e.Amount,
		OriginAccountID: e.OriginAccountID.String(),
		CreatedAt:       e.CreatedAt,
	}
	if e.DestinationAccountID != nil {
		dest := e.DestinationAccountID.String()
		dto.DestinationAccountID = &dest
	}
	return dto
}
