package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hukumai/hukumchat/internal"
	"github.com/hukumai/hukumchat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportLocal  bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a consultation transcript to file",
	Long: `Export a consultation transcript to various formats (jsonl, md, yaml, json).

Use 'hukumchat history' to see available session IDs. Pass --local to
export from the local archive instead of the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid session ID %q: must be a number", args[0])
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		detail, err := fetchDetail(cmd, sessionID, exportLocal)
		if err != nil {
			return err
		}

		outPath := exportOutput
		if outPath == "" {
			outPath = fmt.Sprintf("konsultasi-%d.%s", sessionID, exporter.Extension())
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(detail, f); err != nil {
			return fmt.Errorf("failed to export session: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Exported session %d to %s", sessionID, outPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format: jsonl, md, yaml, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (defaults to konsultasi-<id>.<ext>)")
	exportCmd.Flags().BoolVar(&exportLocal, "local", false, "Export from the local archive instead of the server")
}
