package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/digitalbank/infra"
	"github.com/amirasaad/digitalbank/infra/initializer"
	infra_repository "github.com/amirasaad/digitalbank/infra/repository"
	"github.com/amirasaad/digitalbank/internal/migrations"
	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  migrate up|down
  token <subject>
  register <name> <tax_id>
  customers
  open <customer_id> <checking|savings|CC|CP>
  accounts <tax_id>
  deposit <account_id> <amount>
  withdraw <account_id> <amount>
  transfer <source_id> <amount> <destination_id>
  simulate <account_id> <YYYY-MM-DD>
  history <account_id>`

var (
	errUsage   = errors.New("invalid usage")
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if args[0] == "migrate" {
		return runMigrate(cfg, args[1:], out)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	defer a.Close()

	return execute(context.Background(), a, args, out)
}

func runMigrate(cfg *config.App, args []string, out io.Writer) error {
	if len(args) != 1 || (args[0] != "up" && args[0] != "down") {
		return fmt.Errorf("%w: migrate up|down", errUsage)
	}
	if strings.HasPrefix(cfg.DB.Url, "sqlite://") {
		if args[0] == "down" {
			return fmt.Errorf("migrate down is only supported on postgres")
		}
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			return err
		}
		if err := infra_repository.AutoMigrate(db); err != nil {
			return err
		}
		fmt.Fprintln(out, titleStyle.Render("sqlite schema migrated"))
		return nil
	}

	m, err := migrations.New(cfg.DB.Url)
	if err != nil {
		return err
	}
	defer m.Close() //nolint: errcheck
	if args[0] == "up" {
		err = migrations.Up(m)
	} else {
		err = migrations.Down(m)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, titleStyle.Render("migrate "+args[0]+" complete"))
	return nil
}

func need(args []string, n int, form string) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s", errUsage, form)
	}
	return nil
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// execute runs one command against a wired App.
func execute(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "token":
		if err := need(rest, 1, "token <subject>"); err != nil {
			return err
		}
		if a.TokenService == nil {
			return fmt.Errorf("AUTH_JWT_SECRET is not configured")
		}
		token, err := a.TokenService.Generate(rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)

	case "register":
		if err := need(rest, 2, "register <name> <tax_id>"); err != nil {
			return err
		}
		c, err := a.CustomerService.Register(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Customer registered: ID=%s, Name=%s, TaxID=%s\n", c.ID, c.Name, c.TaxID)

	case "customers":
		all, err := a.CustomerService.List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d customer(s)", len(all))))
		for _, c := range all {
			fmt.Fprintf(out, "%s  %-20s  %s  accounts=%d\n", c.ID, c.Name, c.TaxID, len(c.Accounts))
		}

	case "open":
		if err := need(rest, 2, "open <customer_id> <kind>"); err != nil {
			return err
		}
		customerID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		acct, err := a.AccountService.CreateAccount(ctx, customerID, rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account created: ID=%s, Kind=%s, Balance=%s\n", acct.ID, acct.Kind, acct.Balance)

	case "accounts":
		if err := need(rest, 1, "accounts <tax_id>"); err != nil {
			return err
		}
		accounts, err := a.AccountService.ListByTaxID(ctx, rest[0])
		if err != nil {
			return err
		}
		for _, acct := range accounts {
			fmt.Fprintf(out, "%s  %-8s  %s\n", acct.ID, acct.Kind, acct.Balance)
		}

	case "deposit", "withdraw":
		if err := need(rest, 2, cmd+" <account_id> <amount>"); err != nil {
			return err
		}
		accountID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		amount, err := money.Parse(rest[1])
		if err != nil {
			return err
		}
		op, verb := a.AccountService.Deposit, "Deposited"
		if cmd == "withdraw" {
			op, verb = a.AccountService.Withdraw, "Withdrew"
		}
		acct, err := op(ctx, accountID, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s on account %s. New balance: %s\n", verb, amount, acct.ID, acct.Balance)

	case "transfer":
		if err := need(rest, 3, "transfer <source_id> <amount> <destination_id>"); err != nil {
			return err
		}
		sourceID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		amount, err := money.Parse(rest[1])
		if err != nil {
			return err
		}
		destID, err := parseID(rest[2])
		if err != nil {
			return err
		}
		source, dest, err := a.AccountService.Transfer(ctx, sourceID, amount, destID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Transferred %s from %s (balance %s) to %s (balance %s)\n",
			amount, source.ID, source.Balance, dest.ID, dest.Balance)

	case "simulate":
		if err := need(rest, 2, "simulate <account_id> <YYYY-MM-DD>"); err != nil {
			return err
		}
		accountID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		target, err := time.Parse("2006-01-02", rest[1])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", rest[1], err)
		}
		projection, err := a.AccountService.SimulateInterest(ctx, accountID, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Projected balance on %s at %s/month: %s (now %s)\n",
			rest[1], projection.MonthlyRate, projection.Projected, projection.Balance)

	case "history":
		if err := need(rest, 1, "history <account_id>"); err != nil {
			return err
		}
		accountID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		entries, err := a.AccountService.History(ctx, accountID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			dest := "-"
			if e.DestinationAccountID != nil {
				dest = e.DestinationAccountID.String()
			}
			fmt.Fprintf(out, "%s  %-10s  %10s  %s -> %s\n",
				e.CreatedAt.Format(time.RFC3339), e.Kind, e.Amount, e.OriginAccountID, dest)
		}

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}
