package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subadmin/internal/interfaces/cli/migrate"
	"github.com/orris-inc/subadmin/internal/interfaces/cli/server"
)

//	@title			subadmin API
//	@version		1.0
//	@description	Package subscription administration: packages, purchase review and subscriber validity.
//	@BasePath		/

func main() {
	rootCmd := &cobra.Command{
		Use:   "subadmin",
		Short: "subadmin - package subscription administration",
		Long:  `subadmin serves the package catalogue, accepts proof-of-payment purchases and lets admins approve or reject them.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
