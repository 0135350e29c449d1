package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/forms-in-go/pkg/config"
	"github.com/doodlesbykumbi/forms-in-go/pkg/db"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// serviceAccountCmd represents the service-account command
var serviceAccountCmd = &cobra.Command{
	Use:   "service-account",
	Short: "Manage the forms service account",
	Long:  `Manage the privileged service account the forms server acts through.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'service-account' requires a subcommand (check)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// serviceAccountCheckCmd represents the service-account check command
var serviceAccountCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured service account can elevate",
	Long: `Verify the configured service account: that credentials are present,
that the account exists exactly once, that the password is correct and
that the account holds admin privileges.

These are the same checks the server performs on every form operation, so
a passing check means form requests will not fail on elevation.

Example:
  formsctl service-account check`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkServiceAccount(); err != nil {
			fmt.Fprintf(os.Stderr, "Service account check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Service account OK")
	},
}

func init() {
	rootCmd.AddCommand(serviceAccountCmd)
	serviceAccountCmd.AddCommand(serviceAccountCheckCmd)
}

func checkServiceAccount() error {
	cfg := config.Get()
	if !cfg.HasServiceCredentials() {
		return fmt.Errorf("missing service account credentials in settings")
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	sessions := session.NewStore(database)

	uid, err := sessions.LookupUID(cfg.ServiceAccountUser)
	switch {
	case errors.Is(err, session.ErrUnknownAccount):
		return fmt.Errorf("service account %q does not exist", cfg.ServiceAccountUser)
	case errors.Is(err, session.ErrAmbiguousAccount):
		return fmt.Errorf("service account %q matches multiple accounts", cfg.ServiceAccountUser)
	case err != nil:
		return err
	}
	fmt.Printf("Service account %q has uid %d\n", cfg.ServiceAccountUser, uid)

	elevated, err := sessions.Authenticate(cfg.ServiceAccountUser, cfg.ServiceAccountPassword)
	if err != nil {
		return fmt.Errorf("service account %q could not connect. Check if the account exists and the password is correct", cfg.ServiceAccountUser)
	}
	defer func() { _ = elevated.Close() }()

	if !elevated.IsAdmin() {
		return fmt.Errorf("service account %q exists but lacks admin privileges", cfg.ServiceAccountUser)
	}

	return nil
}
