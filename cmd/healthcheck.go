package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check connectivity to the server and the local setup",
	Long: `Check the health of hukumchat by verifying:
  • Config file accessibility
  • Server reachability
  • Login state
  • Local archive accessibility

This command is useful for debugging connection and setup issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("Hukumchat Health Check"))
		fmt.Println()

		// Step 1: Config
		fmt.Println(infoStyle.Render("Step 1: Loading configuration..."))
		cfg, dir, err := loadConfig()
		if err != nil {
			fmt.Println(failStyle.Render("✗ Failed to load configuration:"), err)
			return fmt.Errorf("health check failed: config unreadable")
		}
		fmt.Println(okStyle.Render("✓ Configuration loaded"))
		if verbose {
			fmt.Printf("   Config dir: %s\n", dir)
			fmt.Printf("   Server URL: %s\n", effectiveServerURL(cfg))
			fmt.Printf("   Timeout:    %s\n", cfg.Timeout())
		}
		fmt.Println()

		// Step 2: Server reachability
		fmt.Println(infoStyle.Render("Step 2: Contacting the server..."))
		client := newClient(cfg)
		serverUp := false
		status, err := client.Ping(cmd.Context())
		if err != nil {
			fmt.Println(failStyle.Render("✗ Server unreachable:"), err)
		} else {
			serverUp = true
			fmt.Println(okStyle.Render("✓ Server is reachable"))
			if verbose {
				fmt.Printf("   Status:  %s\n", status.Status)
				if status.Message != "" {
					fmt.Printf("   Message: %s\n", status.Message)
				}
			}
		}
		fmt.Println()

		// Step 3: Login state
		fmt.Println(infoStyle.Render("Step 3: Checking login state..."))
		if cfg.Username != "" {
			fmt.Println(okStyle.Render(fmt.Sprintf("✓ Logged in as %s", cfg.Username)))
			if cfg.ActiveSession > 0 {
				fmt.Printf("   Active session: %d\n", cfg.ActiveSession)
			}
		} else {
			fmt.Println(warnStyle.Render("⚠ Not logged in"))
			fmt.Println("   Run `hukumchat login <username>` to keep history under your account")
		}
		fmt.Println()

		// Step 4: Local archive
		fmt.Println(infoStyle.Render("Step 4: Checking local archive..."))
		archiveOK := false
		sessionCount := 0
		archive, err := internal.OpenArchive(internal.ArchivePath(dir))
		if err != nil {
			fmt.Println(warnStyle.Render("⚠ Local archive unavailable:"), err)
		} else {
			defer archive.Close()
			sessions, err := archive.Sessions()
			if err != nil {
				fmt.Println(warnStyle.Render("⚠ Archive opened but unreadable:"), err)
			} else {
				archiveOK = true
				sessionCount = len(sessions)
				fmt.Println(okStyle.Render(fmt.Sprintf("✓ Archive accessible (%d archived session(s))", sessionCount)))
				if verbose {
					fmt.Printf("   Archive: %s\n", internal.ArchivePath(dir))
				}
			}
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("Summary"))
		fmt.Println()
		switch {
		case serverUp && archiveOK:
			fmt.Println(okStyle.Render("✓ Health check passed"))
			return nil
		case serverUp:
			fmt.Println(warnStyle.Render("⚠ Server reachable, local archive degraded"))
			fmt.Println("   Consultations will work but won't be archived locally")
			return nil
		default:
			fmt.Println(failStyle.Render("✗ Health check failed"))
			fmt.Println("   • Server unreachable")
			fmt.Println("   • Check the URL with --server or the config file")
			return fmt.Errorf("health check failed: server unreachable")
		}
	},
}

func effectiveServerURL(cfg *internal.Config) string {
	if serverURL != "" {
		return serverURL
	}
	if cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return internal.DefaultBaseURL
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
