package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Example: `  nexo tx add --title "Supermercado" --amount 54.20 --type EXPENSE --category comida
  nexo tx add --title "Salario" --amount 2500 --type INCOME --category salario --date 2026-08-01`,
	RunE: runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE:  runTxList,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd, txListCmd, txRmCmd)

	txAddCmd.Flags().String("title", "", "Transaction title")
	txAddCmd.Flags().String("amount", "", "Amount, always positive")
	txAddCmd.Flags().String("type", "EXPENSE", "INCOME or EXPENSE")
	txAddCmd.Flags().String("category", "otros", "Category name")
	txAddCmd.Flags().String("date", "", "Date (YYYY-MM-DD, default: today)")
	txAddCmd.Flags().String("note", "", "Free-form description")
	_ = txAddCmd.MarkFlagRequired("title")
	_ = txAddCmd.MarkFlagRequired("amount")
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	amountStr, _ := cmd.Flags().GetString("amount")
	typeStr, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	dateStr, _ := cmd.Flags().GetString("date")
	note, _ := cmd.Flags().GetString("note")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	var date time.Time
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date format. Use YYYY-MM-DD: %w", err)
		}
	}

	tx, err := a.store.AddTransaction(domain.Transaction{
		Title:       title,
		Amount:      amount,
		Type:        domain.TransactionType(strings.ToUpper(typeStr)),
		Category:    category,
		Date:        date,
		Description: note,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s %s (%s) [%s]\n", tx.Type, tx.Amount, tx.Title, tx.ID)
	return nil
}

func runTxList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	txs := a.store.Transactions()
	if len(txs) == 0 {
		fmt.Println("No transactions.")
		return nil
	}
	currency := a.store.DisplayCurrency()
	for _, tx := range txs {
		sign := "+"
		if tx.Type == domain.Expense {
			sign = "-"
		}
		fmt.Printf("%s  %s%s %s  %-20s %-12s %s\n",
			tx.Date.Format("2006-01-02"), sign, tx.Amount, currency, tx.Title, tx.Category, tx.ID)
	}
	return nil
}

func runTxRm(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.DeleteTransaction(args[0])
	fmt.Println("Deleted.")
	return nil
}
