package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show income, expense and balance totals",
	RunE:  runSummary,
}

var convertCmd = &cobra.Command{
	Use:     "convert <amount> <from> <to>",
	Short:   "Convert an amount between supported currencies",
	Example: `  nexo convert 100 USD MXN`,
	Args:    cobra.ExactArgs(3),
	RunE:    runConvert,
}

func init() {
	rootCmd.AddCommand(summaryCmd, convertCmd)

	summaryCmd.Flags().String("month", "", "Limit to one month (YYYY-MM)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	monthStr, _ := cmd.Flags().GetString("month")
	sum := a.store.Totals()
	scope := "all time"
	if monthStr != "" {
		ref, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return fmt.Errorf("invalid month format. Use YYYY-MM: %w", err)
		}
		sum = a.store.MonthlySummary(ref)
		scope = monthStr
	}

	currency := a.store.DisplayCurrency()
	fmt.Printf("Summary (%s)\n", scope)
	fmt.Printf("  Income:  %s %s\n", sum.Income, currency)
	fmt.Printf("  Expense: %s %s\n", sum.Expense, currency)
	fmt.Printf("  Balance: %s %s\n", sum.Balance, currency)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}
	from := strings.ToUpper(args[1])
	to := strings.ToUpper(args[2])

	converted, err := domain.ConvertAmount(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s = %s %s\n", amount, from, converted.Round(2), to)
	return nil
}
