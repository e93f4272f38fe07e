package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <github-token>",
	Short: "Connect a GitHub account and restore or create the cloud backup",
	Long: `Verifies the personal access token, looks for an existing backup gist
and restores it. When the account has none, a fresh configuration is
created and the first sync will create the gist.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the full local snapshot to the configured cloud backup",
	RunE:  runSync,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Pull the cloud backup and replace local data with it",
	RunE:  runRestore,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cloud backup configuration and connection state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(loginCmd, syncCmd, restoreCmd, statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	return a.engine.LoginWithToken(cmd.Context(), args[0])
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	return a.engine.Sync(cmd.Context())
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	return a.engine.ManualRestore(cmd.Context())
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	cfg := a.store.Profile().CloudConfig
	if cfg == nil || !cfg.Enabled {
		fmt.Println("Cloud backup: disabled")
		return nil
	}

	fmt.Printf("Cloud backup: enabled (%s)\n", cfg.Provider)
	if cfg.BinID != "" {
		fmt.Printf("Document id:  %s\n", cfg.BinID)
	} else {
		fmt.Println("Document id:  none yet (first sync will create it)")
	}
	if cfg.LastSync != nil {
		fmt.Printf("Last sync:    %s\n", cfg.LastSync.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Last sync:    never")
	}
	fmt.Printf("State:        %s\n", a.engine.Status())
	return nil
}
