package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/forms-in-go/pkg/audit"
	"github.com/doodlesbykumbi/forms-in-go/pkg/config"
	"github.com/doodlesbykumbi/forms-in-go/pkg/db"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the forms application server",
	Long: `Run the forms application server

The server requires the DATABASE_URL environment variable. Service account
credentials come from the config file or the FORMS_SERVICE_ACCOUNT_USER and
FORMS_SERVICE_ACCOUNT_PASSWORD environment variables; without them every
form operation responds with a configuration error.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		if !cfg.HasServiceCredentials() {
			log.Println("Warning: no service account credentials configured; form operations will fail until they are set")
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		auditStore, err := audit.NewStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open audit database: %v\n", err)
			os.Exit(1)
		}
		if auditStore != nil {
			log.Println("Persisting audit events to the audit database")
			audit.SetStore(auditStore)
			defer func() { _ = auditStore.Close() }()
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
