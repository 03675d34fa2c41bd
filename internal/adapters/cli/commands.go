// Package cli holds the operator commands of the admin binary.
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	contactPort "inkwell/internal/ports/contact"
	groupPort "inkwell/internal/ports/group"

	"github.com/spf13/cobra"
)

type CacheUseCase interface {
	Clear(ctx context.Context) error
}

type GroupUseCase interface {
	CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error)
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
	DeleteGroup(ctx context.Context, slug string) error
}

type ContactUseCase interface {
	ListContacts(ctx context.Context, onlyUnanswered bool) ([]*contactPort.ContactDTO, error)
	MarkAnswered(ctx context.Context, id string) error
}

type UserUseCase interface {
	DeleteUser(ctx context.Context, username string) error
}

type Deps struct {
	Cache   CacheUseCase
	Group   GroupUseCase
	Contact ContactUseCase
	User    UserUseCase
}

// NewRootCommand builds the admin command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tasks for the blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCacheCommand(deps.Cache),
		newGroupCommand(deps.Group),
		newContactCommand(deps.Contact),
		newUserCommand(deps.User),
	)
	return root
}

func newCacheCommand(cache CacheUseCase) *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Manage the page cache"}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cache.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "page cache cleared")
			return nil
		},
	})
	return cmd
}

func newGroupCommand(groups GroupUseCase) *cobra.Command {
	cmd := &cobra.Command{Use: "group", Short: "Manage groups"}

	var title, description string
	create := &cobra.Command{
		Use:   "create <slug>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := groups.CreateGroup(cmd.Context(), title, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %s (%s)\n", g.Slug, g.Title)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "group title")
	create.Flags().StringVar(&description, "description", "", "group description")
	_ = create.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := groups.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE")
			for _, g := range all {
				fmt.Fprintf(w, "%s\t%s\n", g.Slug, g.Title)
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := groups.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, del)
	return cmd
}

func newContactCommand(contacts ContactUseCase) *cobra.Command {
	cmd := &cobra.Command{Use: "contact", Short: "Work through support requests"}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List unanswered requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := contacts.ListContacts(cmd.Context(), !all)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tSUBJECT\tANSWERED")
			for _, c := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", c.ID, c.Email, c.Subject, c.IsAnswered)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include answered requests")

	answer := &cobra.Command{
		Use:   "answer <id>",
		Short: "Mark a request as answered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := contacts.MarkAnswered(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s as answered\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, answer)
	return cmd
}

func newUserCommand(users UserUseCase) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage accounts"}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account with its posts, comments and follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := users.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		},
	})
	return cmd
}
