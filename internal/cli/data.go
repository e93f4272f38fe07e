package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexo-finance/nexo/internal/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the full snapshot as JSON to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply a snapshot file, replacing the collections it contains",
	Long: `Collections present in the file replace local ones wholesale; absent
collections are left untouched. A malformed collection is skipped and
reported without blocking the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	data, err := a.store.Export().Encode()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Printf("Exported to %s\n", args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	bundle, keyErrs, err := domain.ParseBundle(data)
	if err != nil {
		return err
	}
	for _, ke := range keyErrs {
		fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", ke.Key, ke.Err)
	}
	a.store.Import(bundle)
	fmt.Println("Import applied.")
	return nil
}
