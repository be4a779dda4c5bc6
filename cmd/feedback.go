package cmd

import (
	"fmt"

	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	feedbackRating  int
	feedbackComment string
	feedbackSession int
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Send feedback about an answer",
	Long: `Send a rating and optional comment about a consultation.

Examples:
  hukumchat feedback --rating 5
  hukumchat feedback --rating 2 --comment "Jawaban kurang lengkap" --session 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if feedbackRating < 1 || feedbackRating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		fields := map[string]any{"rating": feedbackRating}
		if feedbackComment != "" {
			fields["comment"] = feedbackComment
		}
		if cfg.Username != "" {
			fields["username"] = cfg.Username
		}
		sessionID := feedbackSession
		if sessionID == 0 {
			sessionID = cfg.ActiveSession
		}
		if sessionID > 0 {
			fields["session_id"] = sessionID
		}

		client := newClient(cfg)
		var message string
		err = internal.ShowProgress(cmd.Context(), "Mengirim masukan...", func() error {
			message, err = client.SendFeedback(cmd.Context(), fields)
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.Flags().IntVarP(&feedbackRating, "rating", "r", 0, "Rating from 1 to 5 (required)")
	feedbackCmd.Flags().StringVarP(&feedbackComment, "comment", "c", "", "Optional comment")
	feedbackCmd.Flags().IntVar(&feedbackSession, "session", 0, "Session the feedback is about (defaults to the active session)")
	_ = feedbackCmd.MarkFlagRequired("rating")
}
