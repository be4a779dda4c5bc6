package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	articleLimit       int
	articleUU          string
	articlePasal       string
	articleTitle       string
	articleLegalText   string
	articleExplanation string
	articleStatus      string
	articleKeywords    []string
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Browse and manage law articles",
	Long: `Browse the law articles the assistant answers from.

The add, update and delete subcommands modify the server's knowledge
base and are meant for administrators.`,
}

var articleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List law articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var articles []internal.LawArticle
		err = internal.ShowProgress(cmd.Context(), "Memuat daftar pasal...", func() error {
			articles, err = client.ListArticles(cmd.Context(), articleLimit)
			return err
		})
		if err != nil {
			return err
		}
		displayArticles(articles)
		return nil
	},
}

var articleShowCmd = &cobra.Command{
	Use:   "show <article-id>",
	Short: "Show one law article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article ID %q: must be a number", args[0])
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var article *internal.LawArticle
		err = internal.ShowProgress(cmd.Context(), "Memuat pasal...", func() error {
			article, err = client.GetArticle(cmd.Context(), id)
			return err
		})
		if err != nil {
			return err
		}
		displayArticle(article)
		return nil
	},
}

var articleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a law article",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var created *internal.LawArticle
		err = internal.ShowProgress(cmd.Context(), "Menambahkan pasal...", func() error {
			created, err = client.CreateArticle(cmd.Context(), articleFromFlags())
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Pasal ditambahkan dengan ID %d", created.ID))
		return nil
	},
}

var articleUpdateCmd = &cobra.Command{
	Use:   "update <article-id>",
	Short: "Update a law article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article ID %q: must be a number", args[0])
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var updated *internal.LawArticle
		err = internal.ShowProgress(cmd.Context(), "Memperbarui pasal...", func() error {
			updated, err = client.UpdateArticle(cmd.Context(), id, articleFromFlags())
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Pasal %d diperbarui", updated.ID))
		return nil
	},
}

var articleDeleteCmd = &cobra.Command{
	Use:   "delete <article-id>",
	Short: "Delete a law article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article ID %q: must be a number", args[0])
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var message string
		err = internal.ShowProgress(cmd.Context(), "Menghapus pasal...", func() error {
			message, err = client.DeleteArticle(cmd.Context(), id)
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(message)
		return nil
	},
}

func articleFromFlags() internal.LawArticle {
	return internal.LawArticle{
		UU:          articleUU,
		Pasal:       articlePasal,
		Title:       articleTitle,
		LegalText:   articleLegalText,
		Explanation: articleExplanation,
		Status:      articleStatus,
		Keywords:    articleKeywords,
	}
}

func displayArticles(articles []internal.LawArticle) {
	if len(articles) == 0 {
		fmt.Println(headerStyle.Render("Tidak ada pasal"))
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("Ditemukan %d pasal", len(articles))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("UU")+"\t"+titleStyle.Render("Pasal")+"\t"+titleStyle.Render("Judul")+"\t"+titleStyle.Render("Status")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, a := range articles {
		title := a.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(strconv.Itoa(a.ID)), a.UU, a.Pasal, title, dateStyle.Render(a.Status))
	}
	_ = w.Flush()
}

func displayArticle(a *internal.LawArticle) {
	heading := strings.TrimSpace(a.UU + " " + a.Pasal)
	if heading == "" {
		heading = fmt.Sprintf("Pasal #%d", a.ID)
	}
	fmt.Println(sessionHeaderStyle.Render(heading))
	if a.Title != "" {
		fmt.Println(sessionMetaStyle.Render(a.Title))
	}
	if a.LegalText != "" {
		fmt.Println(messageContentStyle.Render(a.LegalText))
	}
	if a.Explanation != "" {
		fmt.Println(titleStyle.Render("Penjelasan"))
		fmt.Println(messageContentStyle.Render(a.Explanation))
	}
	fmt.Println(dateStyle.Render("Status: " + a.Status))
	if len(a.Keywords) > 0 {
		fmt.Println(dateStyle.Render("Kata kunci: " + strings.Join(a.Keywords, ", ")))
	}
}

func init() {
	rootCmd.AddCommand(articleCmd)
	articleCmd.AddCommand(articleListCmd)
	articleCmd.AddCommand(articleShowCmd)
	articleCmd.AddCommand(articleAddCmd)
	articleCmd.AddCommand(articleUpdateCmd)
	articleCmd.AddCommand(articleDeleteCmd)

	articleListCmd.Flags().IntVarP(&articleLimit, "limit", "n", 0, "Maximum number of articles to list")

	for _, c := range []*cobra.Command{articleAddCmd, articleUpdateCmd} {
		c.Flags().StringVar(&articleUU, "uu", "", "Law reference, e.g. \"UU No. 22 Tahun 2009\"")
		c.Flags().StringVar(&articlePasal, "pasal", "", "Article number, e.g. \"Pasal 287\"")
		c.Flags().StringVar(&articleTitle, "title", "", "Short title")
		c.Flags().StringVar(&articleLegalText, "text", "", "Legal text")
		c.Flags().StringVar(&articleExplanation, "explanation", "", "Plain-language explanation")
		c.Flags().StringVar(&articleStatus, "status", "", "Article status, e.g. berlaku or dicabut")
		c.Flags().StringSliceVar(&articleKeywords, "keyword", nil, "Keyword (repeatable)")
	}
}
