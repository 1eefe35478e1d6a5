package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	kasanomahttp "github.com/michsethowusu/kasanoma/internal/server/http"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kasanoma %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func init() {
	kasanomahttp.Version = version
}
