package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/routeops"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of routeops",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "routeops version %s\n", strings.TrimSpace(routeops.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
