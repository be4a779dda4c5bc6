package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	historyLocal    bool
	historyUsername string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your consultations",
	Long: `List consultation sessions for the logged-in user.

By default the list is fetched from the server. Pass --local to read the
transcripts archived on this machine instead, which works offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig()
		if err != nil {
			return err
		}

		if historyLocal {
			archive := openArchive(dir)
			if archive == nil {
				return fmt.Errorf("local archive is not available")
			}
			defer archive.Close()
			sessions, err := archive.Sessions()
			if err != nil {
				return fmt.Errorf("failed to read local archive: %w", err)
			}
			displaySessions(sessions)
			return nil
		}

		username := historyUsername
		if username == "" {
			username = cfg.Username
		}
		if username == "" {
			return fmt.Errorf("no username: login first or pass --user")
		}

		client := newClient(cfg)
		var sessions []internal.ChatSessionSummary
		err = internal.ShowProgress(cmd.Context(), "Memuat riwayat konsultasi...", func() error {
			sessions, err = client.ChatHistory(cmd.Context(), username)
			return err
		})
		if err != nil {
			return err
		}
		displaySessions(sessions)
		return nil
	},
}

func displaySessions(sessions []internal.ChatSessionSummary) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("Belum ada konsultasi"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Ditemukan %d konsultasi", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Judul")+"\t"+titleStyle.Render("Dibuat")+"\t"+titleStyle.Render("Terakhir")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, session := range sessions {
		title := session.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		created := dateStyle.Render("—")
		if session.CreatedAt != "" {
			created = dateStyle.Render(formatSessionDate(session.CreatedAt))
		}

		preview := "—"
		if session.LastPreview != nil {
			preview = *session.LastPreview
			if len(preview) > 40 {
				preview = preview[:37] + "..."
			}
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			idStyle.Render(strconv.Itoa(session.SessionID)),
			title,
			created,
			previewStyle.Render(preview))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Gunakan `hukumchat show <id>` untuk membuka satu konsultasi"))
}

func formatSessionDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if len(raw) >= 10 {
			return raw[:10]
		}
		return raw
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyLocal, "local", false, "Read from the local archive instead of the server")
	historyCmd.Flags().StringVarP(&historyUsername, "user", "u", "", "Username to list history for (defaults to the logged-in user)")
}
