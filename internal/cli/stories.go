package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Story archive commands",
	}

	cmd.AddCommand(newStoriesLatestCmd())
	cmd.AddCommand(newStoriesTopCmd())
	cmd.AddCommand(newStoriesShowCmd())
	cmd.AddCommand(newStoriesLikeCmd())
	cmd.AddCommand(newStoriesTitleCmd())
	cmd.AddCommand(newStoriesUpvoteCmd())
	cmd.AddCommand(newStoriesCommentCmd())
	cmd.AddCommand(newStoriesCommentsCmd())

	return cmd
}

func newStoriesLatestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "List the most recently published stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Story

			path := "/api/v1/stories/latest"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of stories")

	return cmd
}

func newStoriesTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the most liked stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Story

			path := "/api/v1/stories/most-liked"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of stories")

	return cmd
}

func newStoriesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <story-id>",
		Short: "Show one archived story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Story

			if err := client.Get("/api/v1/stories/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStoriesLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <story-id>",
		Short: "Like a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Ack

			if err := client.Post("/api/v1/stories/"+args[0]+"/like", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Liked")
			return nil
		},
	}
}

func newStoriesTitleCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "title <story-id>",
		Short: "Suggest a title for a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			req := map[string]string{"title": title}
			var result Ack

			if err := client.Post("/api/v1/stories/"+args[0]+"/titles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Title suggested")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title text (required)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newStoriesUpvoteCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "upvote <story-id>",
		Short: "Upvote a suggested title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			req := map[string]string{"title": title}
			var result Ack

			if err := client.Post("/api/v1/stories/"+args[0]+"/titles/upvote", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Upvoted")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title text (required)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newStoriesCommentCmd() *cobra.Command {
	var name, text string

	cmd := &cobra.Command{
		Use:   "comment <story-id>",
		Short: "Comment on a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || text == "" {
				return fmt.Errorf("--name and --text are required")
			}

			req := map[string]string{
				"display_name": name,
				"text":         text,
			}
			var result Comment

			if err := client.Post("/api/v1/stories/"+args[0]+"/comments", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Comment posted")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&text, "text", "", "Comment text (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newStoriesCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <story-id>",
		Short: "List a story's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Comment

			if err := client.Get("/api/v1/stories/"+args[0]+"/comments", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "Title suggestion commands",
	}

	cmd.AddCommand(newTitlesListCmd())

	return cmd
}

func newTitlesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List suggested titles across all stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Title

			if err := client.Get("/api/v1/titles", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
