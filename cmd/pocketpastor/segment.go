package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/pocket-pastor/internal/segmenter"
)

var segmentJSON bool

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Print the segmented HTML of a chapter text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegment,
}

func init() {
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "Print the verses as JSON instead of HTML")
}

func runSegment(cmd *cobra.Command, args []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read chapter: %w", err)
	}

	res := segmenter.New(log).Segment(string(raw))
	if !res.Segmented {
		log.Warn("no verses detected, printing original text")
	}

	if segmentJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
	return nil
}
