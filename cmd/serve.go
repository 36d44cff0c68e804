package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/theapemachine/worker-go/pkg/logging"
	"github.com/theapemachine/worker-go/pkg/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the worker loop on stdin/stdout",
	Long:  longServe,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

/*
runWorker wires the protocol loop to the command's streams, stdin and
stdout unless overridden, and blocks until the input ends or a shutdown
notification arrives. Both finish without an error, so the process exits
zero.
*/
func runWorker(cmd *cobra.Command) error {
	if err := logging.Setup(); err != nil {
		log.Warn("logging setup failed", "error", err)
	}

	defer logging.Close()

	return worker.New(cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

var longServe = `
Run the stdio protocol loop: one JSON-RPC message per line in on stdin,
responses and log notifications out on stdout. The loop ends at end of
input or on a shutdown notification, both with a zero exit status.
`
