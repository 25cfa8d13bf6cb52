package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiricut/internal/config"
	"kiricut/internal/logging"
)

const (
	serviceName = "kiricut"
	version     = "0.1.0"
)

func Main() {
	logger := logging.NewLoggerWithService(serviceName)
	config.LoadEnv(logger)

	root := &cobra.Command{
		Use:          "kiricut",
		Short:        "Find highlight clips in YouTube live archives",
		Long: "kiricut reads the chat replay and subtitles of a YouTube live archive,\n" +
			"scores chat activity over time, and proposes clip candidates around the\n" +
			"moments the chat lit up.",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("data-dir", config.GetEnv("DATA_DIR", "data"), "Artifact cache directory")

	root.AddCommand(newFetchCmd(logger))
	root.AddCommand(newAnalyzeCmd(logger))
	root.AddCommand(newServeCmd(logger))
	root.AddCommand(newMockCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
