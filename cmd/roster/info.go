package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the store file, its columns and record count",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

// InfoResponse is the response for the info command.
type InfoResponse struct {
	*store.StoreInfo
	MirrorPath string    `json:"mirror_path"`
	LastSync   time.Time `json:"last_sync,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()

	info, err := s.Info()
	if err != nil {
		exitWithError(ExitError, "reading store: %v", err)
	}

	resp := InfoResponse{StoreInfo: info, MirrorPath: config.MirrorDBPath(s.Path())}
	if needsSync, err := s.NeedsSync(resp.MirrorPath); err == nil && !needsSync {
		resp.LastSync, _ = store.LastSync(resp.MirrorPath)
	}

	if humanOutput {
		fmt.Printf("File:     %s (%s, %d bytes)\n", info.Path, info.Format, info.Size)
		fmt.Printf("Columns:  %s\n", strings.Join(info.Columns, ", "))
		fmt.Printf("Records:  %d\n", info.Records)
		if !resp.LastSync.IsZero() {
			fmt.Printf("Synced:   %s\n", resp.LastSync.Local().Format(time.RFC1123))
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
