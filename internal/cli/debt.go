package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Manage debts and their linked transactions",
	Long: `Debts stay paired with the transaction history. Creating a debt also
records the money movement; paying one records the inverse movement;
deleting one removes every linked transaction.`,
}

var debtAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record money lent to or borrowed from someone",
	Example: `  nexo debt add --person Ana --amount 100 --type LENT
  nexo debt add --person Luis --amount 250 --type BORROWED --due 2026-12-01 --note "Renta"`,
	RunE: runDebtAdd,
}

var debtPayCmd = &cobra.Command{
	Use:   "pay <debt-id>",
	Short: "Record an installment against a debt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtPay,
}

var debtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts with outstanding balances",
	RunE:  runDebtList,
}

var debtRmCmd = &cobra.Command{
	Use:   "rm <debt-id>",
	Short: "Delete a debt and every transaction linked to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtRm,
}

var debtRmPaymentCmd = &cobra.Command{
	Use:   "rm-payment <debt-id> <payment-id>",
	Short: "Undo one installment and its linked transaction",
	Args:  cobra.ExactArgs(2),
	RunE:  runDebtRmPayment,
}

func init() {
	rootCmd.AddCommand(debtCmd)
	debtCmd.AddCommand(debtAddCmd, debtPayCmd, debtListCmd, debtRmCmd, debtRmPaymentCmd)

	debtAddCmd.Flags().String("person", "", "Counterparty name")
	debtAddCmd.Flags().String("amount", "", "Debt amount, always positive")
	debtAddCmd.Flags().String("type", "LENT", "LENT or BORROWED")
	debtAddCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	debtAddCmd.Flags().String("note", "", "Free-form description")
	_ = debtAddCmd.MarkFlagRequired("person")
	_ = debtAddCmd.MarkFlagRequired("amount")

	debtPayCmd.Flags().String("amount", "", "Installment amount")
	_ = debtPayCmd.MarkFlagRequired("amount")
}

func runDebtAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	person, _ := cmd.Flags().GetString("person")
	amountStr, _ := cmd.Flags().GetString("amount")
	typeStr, _ := cmd.Flags().GetString("type")
	dueStr, _ := cmd.Flags().GetString("due")
	note, _ := cmd.Flags().GetString("note")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	var due *time.Time
	if dueStr != "" {
		d, err := time.Parse("2006-01-02", dueStr)
		if err != nil {
			return fmt.Errorf("invalid due date format. Use YYYY-MM-DD: %w", err)
		}
		due = &d
	}

	debt, tx, err := a.store.CreateDebt(amount, domain.DebtType(strings.ToUpper(typeStr)), person, due, note)
	if err != nil {
		return err
	}

	fmt.Printf("Debt %s: %s %s (%s)\n", debt.ID, debt.Type, debt.Amount, debt.Person)
	fmt.Printf("Linked transaction %s: %s %s\n", tx.ID, tx.Type, tx.Amount)
	return nil
}

func runDebtPay(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	debt, tx, err := a.store.PayDebt(args[0], amount)
	if err != nil {
		return err
	}

	fmt.Printf("Paid %s on debt %s, remaining %s\n", amount, debt.ID, debt.Remaining())
	fmt.Printf("Linked transaction %s: %s %s\n", tx.ID, tx.Type, tx.Amount)
	return nil
}

func runDebtList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	debts := a.store.Debts()
	if len(debts) == 0 {
		fmt.Println("No debts.")
		return nil
	}
	for _, d := range debts {
		due := ""
		if d.DueDate != nil {
			due = " due " + d.DueDate.Format("2006-01-02")
		}
		fmt.Printf("%-8s %-15s %s of %s paid, remaining %s%s  %s\n",
			d.Type, d.Person, d.PaidAmount, d.Amount, d.Remaining(), due, d.ID)
	}
	return nil
}

func runDebtRm(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.DeleteDebt(args[0])
	fmt.Println("Deleted debt and linked transactions.")
	return nil
}

func runDebtRmPayment(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.DeletePayment(args[0], args[1])
	fmt.Println("Deleted payment and linked transaction.")
	return nil
}
