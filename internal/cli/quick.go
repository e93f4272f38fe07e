package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Manage quick actions (saved transaction templates)",
}

var quickAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Save a transaction template",
	Example: `  nexo quick add --title "Café" --amount 3.50 --type EXPENSE --category comida`,
	RunE:    runQuickAdd,
}

var quickListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quick actions",
	RunE:  runQuickList,
}

var quickRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Record a transaction from a saved template",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuickRun,
}

var quickRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a quick action",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuickRm,
}

func init() {
	rootCmd.AddCommand(quickCmd)
	quickCmd.AddCommand(quickAddCmd, quickListCmd, quickRunCmd, quickRmCmd)

	quickAddCmd.Flags().String("title", "", "Template title")
	quickAddCmd.Flags().String("amount", "", "Amount, always positive")
	quickAddCmd.Flags().String("type", "EXPENSE", "INCOME or EXPENSE")
	quickAddCmd.Flags().String("category", "otros", "Category name")
	quickAddCmd.Flags().String("icon", "", "Icon name")
	_ = quickAddCmd.MarkFlagRequired("title")
	_ = quickAddCmd.MarkFlagRequired("amount")
}

func runQuickAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	amountStr, _ := cmd.Flags().GetString("amount")
	typeStr, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	icon, _ := cmd.Flags().GetString("icon")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	qa, err := a.store.SaveQuickAction(domain.QuickAction{
		Title:    title,
		Amount:   amount,
		Type:     domain.TransactionType(strings.ToUpper(typeStr)),
		Category: category,
		Icon:     icon,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Saved quick action %s (%s)\n", qa.Title, qa.ID)
	return nil
}

func runQuickList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	actions := a.store.QuickActions()
	if len(actions) == 0 {
		fmt.Println("No quick actions.")
		return nil
	}
	for _, qa := range actions {
		fmt.Printf("%-20s %s %s  %-12s %s\n", qa.Title, qa.Type, qa.Amount, qa.Category, qa.ID)
	}
	return nil
}

func runQuickRun(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	tx, err := a.store.ExecuteQuickAction(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s %s (%s) [%s]\n", tx.Type, tx.Amount, tx.Title, tx.ID)
	return nil
}

func runQuickRm(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.DeleteQuickAction(args[0])
	fmt.Println("Deleted.")
	return nil
}
