package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage free-form sheets",
}

var sheetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sheets",
	RunE:  runSheetList,
}

var sheetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an empty sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetAdd,
}

var sheetSetCmd = &cobra.Command{
	Use:   "set <sheet-id> <cell> <value>",
	Short: "Write one cell of a sheet",
	Args:  cobra.ExactArgs(3),
	RunE:  runSheetSet,
}

var sheetRmCmd = &cobra.Command{
	Use:   "rm <sheet-id>",
	Short: "Delete a sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetRm,
}

func init() {
	rootCmd.AddCommand(sheetCmd)
	sheetCmd.AddCommand(sheetListCmd, sheetAddCmd, sheetSetCmd, sheetRmCmd)

	sheetAddCmd.Flags().String("color", "", "Display color gradient")
}

func runSheetList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	sheets := a.store.Sheets()
	if len(sheets) == 0 {
		fmt.Println("No sheets.")
		return nil
	}
	for _, sh := range sheets {
		fmt.Printf("%-15s %3d cells  modified %s  %s\n",
			sh.Name, len(sh.Data), sh.LastModified.Format("2006-01-02"), sh.ID)
	}
	return nil
}

func runSheetAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	color, _ := cmd.Flags().GetString("color")
	sh := a.store.UpsertSheet(domain.Sheet{Name: args[0], Color: color})
	fmt.Printf("Created sheet %s (%s)\n", sh.Name, sh.ID)
	return nil
}

func runSheetSet(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	id, cell, value := args[0], args[1], args[2]
	var target *domain.Sheet
	for _, sh := range a.store.Sheets() {
		if sh.ID == id {
			dup := sh
			target = &dup
			break
		}
	}
	if target == nil {
		return fmt.Errorf("sheet %q not found", id)
	}
	if target.Data == nil {
		target.Data = map[string]string{}
	}
	target.Data[cell] = value
	a.store.UpsertSheet(*target)
	fmt.Printf("%s[%s] = %s\n", target.Name, cell, value)
	return nil
}

func runSheetRm(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	a.store.DeleteSheet(args[0])
	fmt.Println("Deleted.")
	return nil
}
