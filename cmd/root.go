package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	serverURL      string
	timeoutSeconds int
	version        string = "dev"
	commit         string = "unknown"
	date           string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hukumchat",
	Short: "Chat with the hukum lalu lintas legal-assistance service",
	Long: `A CLI client for the hukum lalu lintas (traffic law) question-answering
service.

Ask questions about Indonesian traffic law, browse your consultation
history, and manage your account, all from the terminal. Answers come
with the law articles the server used to ground them.

Quick Start:
  hukumchat ask "Apa sanksi menerobos lampu merah?"
  hukumchat history                   # List your consultations
  hukumchat show 42                   # View one consultation
  hukumchat export 42 --format md     # Export a transcript

Sessions: the first ask starts a consultation on the server; follow-up
asks continue it until you pass --new-session. Login with
'hukumchat login' so history is kept under your account.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds (overrides config)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig loads the persisted CLI state and its directory.
func loadConfig() (*internal.Config, string, error) {
	dir, err := internal.DefaultConfigDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	cfg, err := internal.LoadConfig(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, dir, nil
}

// newClient builds the API client from config and flag overrides.
func newClient(cfg *internal.Config) *internal.Client {
	base := cfg.ServerURL
	if serverURL != "" {
		base = serverURL
	}
	timeout := cfg.Timeout()
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return internal.NewClientWith(base, &http.Client{Timeout: timeout})
}

// openArchive opens the local transcript archive under the config dir.
// Failures are soft: commands fall back to server-only behavior.
func openArchive(dir string) *internal.Archive {
	archive, err := internal.OpenArchive(internal.ArchivePath(dir))
	if err != nil {
		internal.LogWarn("Local archive unavailable: %v", err)
		return nil
	}
	return archive
}
