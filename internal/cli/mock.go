package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kiricut/internal/mockdata"
	"kiricut/internal/store"
)

func newMockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mock",
		Short:        "Write mock artifacts for trying the tool offline",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runMock,
	}

	cmd.Flags().String("video-id", mockdata.DefaultVideoID, "Video id to store the artifacts under")

	return cmd
}

func runMock(cmd *cobra.Command, _ []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	videoID, _ := cmd.Flags().GetString("video-id")

	st, err := store.New(dataDir)
	if err != nil {
		return err
	}
	if err := mockdata.Write(st, videoID); err != nil {
		return err
	}

	if videoID == "" {
		videoID = mockdata.DefaultVideoID
	}
	chatPath, err := st.ChatPath(videoID)
	if err != nil {
		return err
	}
	subtitlePath, err := st.SubtitlePath(videoID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mock chat written to %s\n", chatPath)
	fmt.Fprintf(out, "mock subtitles written to %s\n", subtitlePath)
	fmt.Fprintf(out, "try: kiricut analyze %s\n", videoID)
	return nil
}
