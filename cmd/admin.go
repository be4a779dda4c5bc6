package cmd

import (
	"fmt"

	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations on the server",
}

var rebuildIndexCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Rebuild the server's retrieval index",
	Long: `Ask the server to rebuild its retrieval index from the current set of
law articles. New and updated articles are not used for answers until
the index is rebuilt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var message string
		err = internal.ShowProgress(cmd.Context(), "Membangun ulang indeks...", func() error {
			message, err = client.RebuildIndex(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(message)
		return nil
	},
}

var indexStatusCmd = &cobra.Command{
	Use:   "index-status",
	Short: "Show the server's retrieval index status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var status *internal.IndexStatus
		err = internal.ShowProgress(cmd.Context(), "Memuat status indeks...", func() error {
			status, err = client.GetIndexStatus(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Status indeks"))
		fmt.Printf("  Dokumen terindeks: %d\n", status.IndexedDocuments)
		if status.LastBuiltAt != "" {
			fmt.Printf("  Terakhir dibangun: %s\n", status.LastBuiltAt)
		}
		if status.EmbedModel != "" {
			fmt.Printf("  Model embedding:   %s\n", status.EmbedModel)
		}
		if status.GenModel != "" {
			fmt.Printf("  Model generasi:    %s\n", status.GenModel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(rebuildIndexCmd)
	adminCmd.AddCommand(indexStatusCmd)
}
