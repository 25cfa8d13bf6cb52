package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kiricut/internal/logging"
	"kiricut/internal/pipeline"
)

func newFetchCmd(logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fetch <url-or-id>",
		Short:        "Download the chat replay and subtitles for a video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], logger)
		},
	}

	cmd.Flags().Bool("chat", false, "Fetch only the chat replay")
	cmd.Flags().Bool("subtitles", false, "Fetch only the subtitles")
	cmd.Flags().Bool("force", false, "Refetch artifacts that are already cached")

	return cmd
}

func runFetch(cmd *cobra.Command, raw string, logger logging.Logger) error {
	videoID, err := resolveVideoID(raw)
	if err != nil {
		return err
	}

	chat, _ := cmd.Flags().GetBool("chat")
	subs, _ := cmd.Flags().GetBool("subtitles")
	force, _ := cmd.Flags().GetBool("force")

	cfg := pipelineConfig(cmd, videoID, logger)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	res, err := pipeline.Fetch(ctx, cfg, chat, subs, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printArtifactResult(out, "chat replay", res.Chat)
	printArtifactResult(out, "subtitles", res.Subtitles)
	return nil
}
