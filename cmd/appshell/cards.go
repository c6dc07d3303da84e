package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/knowcards/appshell/internal/core/domain"
)

func newCardsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage knowledge cards",
	}

	cmd.AddCommand(newCardsListCmd(flags, "list", "List cards", false))
	cmd.AddCommand(newCardsListCmd(flags, "favorites", "List favorite cards", true))
	cmd.AddCommand(newCardsRecentCmd(flags))
	cmd.AddCommand(newCardsGetCmd(flags))
	cmd.AddCommand(newCardsCreateCmd(flags))
	cmd.AddCommand(newCardsUpdateCmd(flags))
	cmd.AddCommand(newCardsDeleteCmd(flags))

	return cmd
}

type cardQueryFlags struct {
	Skip     int `validate:"gte=0"`
	Page     int `validate:"gte=0"`
	Limit    int `validate:"gte=0,lte=100"`
	Search   string
	Tags     string
	Category string
	Status   string
}

func (f *cardQueryFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.Skip, "skip", 0, "number of cards to skip")
	fs.IntVar(&f.Page, "page", 0, "page number")
	fs.IntVar(&f.Limit, "limit", 0, "page size")
	fs.StringVar(&f.Search, "search", "", "full-text search")
	fs.StringVar(&f.Tags, "tags", "", "comma separated tags")
	fs.StringVar(&f.Category, "category", "", "category")
	fs.StringVar(&f.Status, "status", "", "status")
}

func (f *cardQueryFlags) query() (domain.CardQuery, error) {
	if err := validate.Struct(f); err != nil {
		return domain.CardQuery{}, fmt.Errorf("invalid query: %w", err)
	}
	return domain.CardQuery{
		Skip:     f.Skip,
		Page:     f.Page,
		Limit:    f.Limit,
		Search:   f.Search,
		Tags:     domain.ParseTags(f.Tags),
		Category: f.Category,
		Status:   f.Status,
	}, nil
}

func newCardsListCmd(flags *globalFlags, use, short string, favorites bool) *cobra.Command {
	qf := &cardQueryFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards"); err != nil {
					return err
				}
				list := a.cards.List
				if favorites {
					list = a.cards.Favorites
				}
				cards, err := list(cmd.Context(), q)
				if err != nil {
					return err
				}
				return printJSON(cmd, cards)
			})
		},
	}
	qf.bind(cmd.Flags())

	return cmd
}

func newCardsRecentCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently accessed cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validate.Var(limit, "gt=0,lte=100"); err != nil {
				return fmt.Errorf("invalid limit: %w", err)
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/dashboard"); err != nil {
					return err
				}
				cards, err := a.cards.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, cards)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of cards")

	return cmd
}

func newCardsGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards/" + id.String()); err != nil {
					return err
				}
				card, err := a.cards.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, card)
			})
		},
	}
}

// cardFlags holds the editable card fields shared by create and update.
type cardFlags struct {
	title       string
	content     string
	contentType string
	summary     string
	tags        string
	category    string
	status      string
	priority    int
	favorite    bool
	public      bool
	notebook    string
}

func (f *cardFlags) bind(fs *pflag.FlagSet, withStatus bool) {
	fs.StringVar(&f.title, "title", "", "card title")
	fs.StringVar(&f.content, "content", "", "card body")
	fs.StringVar(&f.contentType, "content-type", "", "markdown, text or html")
	fs.StringVar(&f.summary, "summary", "", "short summary")
	fs.StringVar(&f.tags, "tags", "", "comma separated tags")
	fs.StringVar(&f.category, "category", "", "category")
	fs.IntVar(&f.priority, "priority", 0, "priority")
	fs.BoolVar(&f.favorite, "favorite", false, "mark as favorite")
	fs.BoolVar(&f.public, "public", false, "make the card public")
	fs.StringVar(&f.notebook, "notebook", "", "notebook id")
	if withStatus {
		fs.StringVar(&f.status, "status", "", "card status")
	}
}

func (f *cardFlags) createRequest() (domain.CreateCardRequest, error) {
	req := domain.CreateCardRequest{
		Title:       strings.TrimSpace(f.title),
		Content:     f.content,
		ContentType: f.contentType,
		Summary:     f.summary,
		Tags:        domain.ParseTags(f.tags),
		Category:    f.category,
		Priority:    f.priority,
		IsFavorite:  f.favorite,
		IsPublic:    f.public,
		NotebookID:  domain.ID(f.notebook),
	}
	if req.Tags == nil {
		req.Tags = domain.Tags{}
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid card: %w", err)
	}
	return req, nil
}

// updateRequest sets only the fields whose flags were given.
func (f *cardFlags) updateRequest(fs *pflag.FlagSet) (domain.UpdateCardRequest, error) {
	var req domain.UpdateCardRequest
	if fs.Changed("title") {
		title := strings.TrimSpace(f.title)
		req.Title = &title
	}
	if fs.Changed("content") {
		req.Content = &f.content
	}
	if fs.Changed("content-type") {
		req.ContentType = &f.contentType
	}
	if fs.Changed("summary") {
		req.Summary = &f.summary
	}
	if fs.Changed("tags") {
		tags := domain.ParseTags(f.tags)
		if tags == nil {
			tags = domain.Tags{}
		}
		req.Tags = &tags
	}
	if fs.Changed("category") {
		req.Category = &f.category
	}
	if fs.Changed("status") {
		req.Status = &f.status
	}
	if fs.Changed("priority") {
		req.Priority = &f.priority
	}
	if fs.Changed("favorite") {
		req.IsFavorite = &f.favorite
	}
	if fs.Changed("public") {
		req.IsPublic = &f.public
	}
	if fs.Changed("notebook") {
		nb := domain.ID(f.notebook)
		req.NotebookID = &nb
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid card update: %w", err)
	}
	return req, nil
}

func newCardsCreateCmd(flags *globalFlags) *cobra.Command {
	cf := &cardFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := cf.createRequest()
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards/new"); err != nil {
					return err
				}
				card, err := a.cards.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, card)
			})
		},
	}
	cf.bind(cmd.Flags(), false)

	return cmd
}

func newCardsUpdateCmd(flags *globalFlags) *cobra.Command {
	cf := &cardFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			req, err := cf.updateRequest(cmd.Flags())
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards/" + id.String()); err != nil {
					return err
				}
				card, err := a.cards.Update(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, card)
			})
		},
	}
	cf.bind(cmd.Flags(), true)

	return cmd
}

func newCardsDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards/" + id.String()); err != nil {
					return err
				}
				if err := a.cards.Delete(cmd.Context(), id); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"deleted": id.String()})
			})
		},
	}
}
