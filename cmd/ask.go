package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	askNewSession  bool
	askStream      bool
	askInteractive bool
	askUsername    string
)

var (
	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sourceTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	sourceBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			PaddingLeft(2)
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a traffic-law question",
	Long: `Ask a question about Indonesian traffic law.

The first question starts a consultation on the server; follow-up asks
continue it. Use --new-session to start over, or --interactive for a
back-and-forth conversation in one process.

Examples:
  hukumchat ask "Berapa denda tidak memakai helm?"
  hukumchat ask --stream "Apa aturan batas kecepatan di tol?"
  hukumchat ask -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askNewSession, "new-session", false, "Start a new consultation instead of continuing the active one")
	askCmd.Flags().BoolVar(&askStream, "stream", false, "Stream the answer as it is generated")
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "Interactive conversation mode")
	askCmd.Flags().StringVarP(&askUsername, "user", "u", "", "Username to record the consultation under (defaults to the logged-in user)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	username := askUsername
	if username == "" {
		username = cfg.Username
	}
	if askNewSession {
		cfg.ClearSession()
	}

	archive := openArchive(dir)
	if archive != nil {
		defer archive.Close()
	}

	if askInteractive || len(args) == 0 {
		return runConversation(cmd.Context(), client, cfg, dir, archive, username)
	}

	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}
	return askOnce(cmd.Context(), client, cfg, dir, archive, username, question)
}

func askOnce(ctx context.Context, client *internal.Client, cfg *internal.Config, dir string, archive *internal.Archive, username, question string) error {
	var sessionID *int
	if cfg.ActiveSession > 0 {
		id := cfg.ActiveSession
		sessionID = &id
	}

	var result *internal.ChatResult
	var err error
	if askStream {
		result, err = client.AskStream(ctx, question, username, sessionID, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()
	} else {
		err = internal.ShowProgress(ctx, "Menghubungi asisten hukum...", func() error {
			result, err = client.Ask(ctx, question, username, sessionID)
			return err
		})
	}
	if err != nil {
		return err
	}

	if !askStream {
		fmt.Println(answerStyle.Render(result.AnswerText))
	}
	printSources(result.Sources)

	if result.SessionID != nil && *result.SessionID != cfg.ActiveSession {
		cfg.ActiveSession = *result.SessionID
		if saveErr := internal.SaveConfig(dir, cfg); saveErr != nil {
			internal.LogWarn("Failed to persist active session: %v", saveErr)
		}
	}
	recordExchange(archive, cfg.ActiveSession, username, question, result.AnswerText)
	return nil
}

func runConversation(ctx context.Context, client *internal.Client, cfg *internal.Config, dir string, archive *internal.Archive, username string) error {
	internal.PrintInfo("Mode percakapan. Ketik pertanyaan, atau 'exit' untuk keluar.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}
		if err := askOnce(ctx, client, cfg, dir, archive, username, question); err != nil {
			internal.PrintError(fmt.Sprintf("%v", err))
		}
		fmt.Println()
	}
}

func printSources(sources []internal.SourceDoc) {
	if len(sources) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(sourceTitleStyle.Render("Dasar hukum:"))
	for _, src := range sources {
		title := src.Title
		if title == "" {
			title = src.ID
		}
		fmt.Println(sourceBodyStyle.Render("• " + title))
		if src.Body != "" {
			fmt.Println(sourceBodyStyle.Render(snippet(src.Body, 200)))
		}
	}
}

// recordExchange appends both turns to the local archive when available.
func recordExchange(archive *internal.Archive, sessionID int, username, question, answer string) {
	if archive == nil || sessionID <= 0 {
		return
	}
	now := time.Now()
	if err := archive.RecordTurn(sessionID, username, "user", question, now); err != nil {
		internal.LogWarn("Failed to archive question: %v", err)
		return
	}
	if err := archive.RecordTurn(sessionID, username, "assistant", answer, now); err != nil {
		internal.LogWarn("Failed to archive answer: %v", err)
	}
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
