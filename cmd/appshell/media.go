package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/knowcards/appshell/internal/core/domain"
)

const mediaRoute = "/media"

func newMediaCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage the media library",
	}

	cmd.AddCommand(newMediaListCmd(flags))
	cmd.AddCommand(newMediaGetCmd(flags))
	cmd.AddCommand(newMediaCreateCmd(flags))
	cmd.AddCommand(newMediaUpdateCmd(flags))
	cmd.AddCommand(newMediaDeleteCmd(flags))

	return cmd
}

type mediaQueryFlags struct {
	Skip      int `validate:"gte=0"`
	Limit     int `validate:"gte=0,lte=100"`
	MediaType string
	Status    string
	Category  string
	Tags      string
	Search    string
}

func (f *mediaQueryFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.Skip, "skip", 0, "number of items to skip")
	fs.IntVar(&f.Limit, "limit", 0, "page size")
	fs.StringVar(&f.MediaType, "type", "", "media type, e.g. book or movie")
	fs.StringVar(&f.Status, "status", "", "status")
	fs.StringVar(&f.Category, "category", "", "category")
	fs.StringVar(&f.Tags, "tags", "", "comma separated tags")
	fs.StringVar(&f.Search, "search", "", "full-text search")
}

func (f *mediaQueryFlags) query() (domain.MediaQuery, error) {
	if err := validate.Struct(f); err != nil {
		return domain.MediaQuery{}, fmt.Errorf("invalid query: %w", err)
	}
	return domain.MediaQuery{
		Skip:      f.Skip,
		Limit:     f.Limit,
		MediaType: f.MediaType,
		Status:    f.Status,
		Category:  f.Category,
		Tags:      domain.ParseTags(f.Tags),
		Search:    f.Search,
	}, nil
}

func newMediaListCmd(flags *globalFlags) *cobra.Command {
	qf := &mediaQueryFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require(mediaRoute); err != nil {
					return err
				}
				items, err := a.media.List(cmd.Context(), q)
				if err != nil {
					return err
				}
				return printJSON(cmd, items)
			})
		},
	}
	qf.bind(cmd.Flags())

	return cmd
}

func newMediaGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require(mediaRoute); err != nil {
					return err
				}
				item, err := a.media.Get(cmd.Context(), domain.ID(args[0]))
				if err != nil {
					return err
				}
				return printJSON(cmd, item)
			})
		},
	}
}

// mediaFlags holds the editable media fields shared by create and update.
type mediaFlags struct {
	title       string
	mediaType   string
	description string
	rating      float64
	personal    float64
	status      string
	progress    float64
	notes       string
	poster      string
	tags        string
	category    string
}

func (f *mediaFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "title")
	fs.StringVar(&f.mediaType, "type", "", "media type, e.g. book or movie")
	fs.StringVar(&f.description, "description", "", "description")
	fs.Float64Var(&f.rating, "rating", 0, "public rating, 0 to 10")
	fs.Float64Var(&f.personal, "personal-rating", 0, "your rating, 0 to 10")
	fs.StringVar(&f.status, "status", "", "status, e.g. reading or completed")
	fs.Float64Var(&f.progress, "progress", 0, "progress percentage")
	fs.StringVar(&f.notes, "notes", "", "notes")
	fs.StringVar(&f.poster, "poster-url", "", "poster image URL")
	fs.StringVar(&f.tags, "tags", "", "comma separated tags")
	fs.StringVar(&f.category, "category", "", "category")
}

func (f *mediaFlags) createRequest(fs *pflag.FlagSet) (domain.CreateMediaRequest, error) {
	req := domain.CreateMediaRequest{
		Title:       strings.TrimSpace(f.title),
		MediaType:   f.mediaType,
		Description: f.description,
		Status:      f.status,
		Progress:    f.progress,
		Notes:       f.notes,
		PosterURL:   f.poster,
		Tags:        domain.ParseTags(f.tags).String(),
		Category:    f.category,
	}
	if fs.Changed("rating") {
		req.Rating = &f.rating
	}
	if fs.Changed("personal-rating") {
		req.PersonalRating = &f.personal
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid media item: %w", err)
	}
	return req, nil
}

// updateRequest sets only the fields whose flags were given.
func (f *mediaFlags) updateRequest(fs *pflag.FlagSet) (domain.UpdateMediaRequest, error) {
	var req domain.UpdateMediaRequest
	if fs.Changed("title") {
		title := strings.TrimSpace(f.title)
		req.Title = &title
	}
	if fs.Changed("type") {
		req.MediaType = &f.mediaType
	}
	if fs.Changed("description") {
		req.Description = &f.description
	}
	if fs.Changed("rating") {
		req.Rating = &f.rating
	}
	if fs.Changed("personal-rating") {
		req.PersonalRating = &f.personal
	}
	if fs.Changed("status") {
		req.Status = &f.status
	}
	if fs.Changed("progress") {
		req.Progress = &f.progress
	}
	if fs.Changed("notes") {
		req.Notes = &f.notes
	}
	if fs.Changed("tags") {
		tags := domain.ParseTags(f.tags).String()
		req.Tags = &tags
	}
	if fs.Changed("category") {
		req.Category = &f.category
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid media update: %w", err)
	}
	return req, nil
}

func newMediaCreateCmd(flags *globalFlags) *cobra.Command {
	mf := &mediaFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a media item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := mf.createRequest(cmd.Flags())
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require(mediaRoute); err != nil {
					return err
				}
				item, err := a.media.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, item)
			})
		},
	}
	mf.bind(cmd.Flags())

	return cmd
}

func newMediaUpdateCmd(flags *globalFlags) *cobra.Command {
	mf := &mediaFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := mf.updateRequest(cmd.Flags())
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require(mediaRoute); err != nil {
					return err
				}
				item, err := a.media.Update(cmd.Context(), domain.ID(args[0]), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, item)
			})
		},
	}
	mf.bind(cmd.Flags())

	return cmd
}

func newMediaDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require(mediaRoute); err != nil {
					return err
				}
				if err := a.media.Delete(cmd.Context(), id); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"deleted": id.String()})
			})
		},
	}
}
