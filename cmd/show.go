package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	showLocal bool
	showLimit int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the transcript of a consultation",
	Long: `Display the full transcript of one consultation session.

By default the transcript is fetched from the server. Pass --local to
read the copy archived on this machine instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid session ID %q: must be a number", args[0])
		}

		detail, err := fetchDetail(cmd, sessionID, showLocal)
		if err != nil {
			return err
		}
		displayDetail(detail)
		return nil
	},
}

// fetchDetail loads a session transcript from the server or the local archive.
func fetchDetail(cmd *cobra.Command, sessionID int, local bool) (*internal.ChatSessionDetail, error) {
	cfg, dir, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if local {
		archive := openArchive(dir)
		if archive == nil {
			return nil, fmt.Errorf("local archive is not available")
		}
		defer archive.Close()
		return archive.Session(sessionID)
	}

	client := newClient(cfg)
	var detail *internal.ChatSessionDetail
	err = internal.ShowProgress(cmd.Context(), "Memuat transkrip...", func() error {
		detail, err = client.SessionDetail(cmd.Context(), sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func displayDetail(detail *internal.ChatSessionDetail) {
	fmt.Println(sessionHeaderStyle.Render(internal.GeneratedSessionTitle(detail.SessionID)))
	meta := fmt.Sprintf("Sesi %d", detail.SessionID)
	if detail.Username != "" {
		meta += " · " + detail.Username
	}
	meta += fmt.Sprintf(" · %d pesan", len(detail.Messages))
	fmt.Println(sessionMetaStyle.Render(meta))

	messages := detail.Messages
	if showLimit > 0 && len(messages) > showLimit {
		skipped := len(messages) - showLimit
		fmt.Println(timestampStyle.Render(fmt.Sprintf("(%d pesan sebelumnya dilewati)", skipped)))
		messages = messages[skipped:]
	}

	for _, turn := range messages {
		label := assistantMessageStyle.Render("Asisten")
		if turn.IsUser() {
			label = userMessageStyle.Render("Anda")
		}
		fmt.Println(label)
		if turn.CreatedAt != "" {
			fmt.Println(timestampStyle.Render("  " + formatSessionDate(turn.CreatedAt)))
		}
		fmt.Println(messageContentStyle.Render(turn.Text))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showLocal, "local", false, "Read from the local archive instead of the server")
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show only the last N messages")
}
