package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage custom categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom categories",
	RunE:  runCategoryList,
}

var currencyCmd = &cobra.Command{
	Use:   "currency [code]",
	Short: "Show or change the display currency",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCurrency,
}

func init() {
	rootCmd.AddCommand(categoryCmd, currencyCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.AddCustomCategory(args[0])
	fmt.Println("Added.")
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	for _, c := range a.store.CustomCategories() {
		fmt.Println(c)
	}
	return nil
}

func runCurrency(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(a.store.DisplayCurrency())
		return nil
	}

	code := strings.ToUpper(args[0])
	if _, ok := domain.FindCurrency(code); !ok {
		return fmt.Errorf("unsupported currency %q", code)
	}
	a.store.SetDisplayCurrency(code)
	fmt.Printf("Display currency set to %s\n", code)
	return nil
}
