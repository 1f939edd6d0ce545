package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/tablelog/tablelog-server/internal/di/providers"
	"github.com/tablelog/tablelog-server/internal/domain"
	"github.com/tablelog/tablelog-server/internal/service"
)

func newStorageInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "storage-info",
		Short: "Show estimated storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withContainer(func(i do.Injector) error {
				lists := do.MustInvoke[*service.ListService](i)
				info := lists.GetStorageInfo(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Used:  %d bytes\nTotal: %d bytes\nUsage: %.2f%%\n",
					info.Used, info.Total, info.Percentage)
				return nil
			})
		},
	}
}

func newClearCacheCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove cached restaurants, search history, curated lists and reviews",
		Long:  "Removes gateway-derived data. Profiles, follows, diaries and user lists are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withContainer(func(i do.Injector) error {
				lists := do.MustInvoke[*service.ListService](i)
				if err := lists.ClearAllData(cmd.Context()); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			})
		},
	}
}

func newUsersCmd(opts *options) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Inspect user profiles",
	}

	users.AddCommand(&cobra.Command{
		Use:   "list [query]",
		Short: "List profiles, optionally matching a name or username",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(i do.Injector) error {
				identity := do.MustInvoke[*service.IdentityService](i)

				var profiles []domain.UserProfile
				if len(args) == 1 {
					profiles = identity.SearchProfiles(cmd.Context(), args[0])
				} else {
					profiles = identity.ListUsers(cmd.Context())
				}
				writeUsers(cmd.OutOrStdout(), profiles)
				return nil
			})
		},
	})

	return users
}

func newListsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lists <user-id>",
		Short: "Show a user's lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(i do.Injector) error {
				identity := do.MustInvoke[*service.IdentityService](i)
				if identity.GetUser(cmd.Context(), args[0]) == nil {
					return fmt.Errorf("user %q not found", args[0])
				}

				lists := do.MustInvoke[*service.ListService](i)
				writeLists(cmd.OutOrStdout(), lists.GetUserLists(cmd.Context(), args[0]))
				return nil
			})
		},
	}
}

func newCuratedCmd(opts *options) *cobra.Command {
	var lat, lng float64

	curated := &cobra.Command{
		Use:   "curated",
		Short: "Manage curated lists",
	}

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Regenerate curated lists from the places gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withContainer(func(i do.Injector) error {
				var location *domain.LatLng
				if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
					location = &domain.LatLng{Lat: lat, Lng: lng}
				}

				if !do.MustInvoke[*providers.PlacesClientHandle](i).Configured() {
					return errors.New("GOOGLE_PLACES_API_KEY is not set")
				}

				svc := do.MustInvoke[*service.CuratedService](i)
				lists, err := svc.Refresh(cmd.Context(), location)
				if err != nil {
					return fmt.Errorf("refresh curated lists: %w", err)
				}
				for _, l := range lists {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d restaurants\n", l.Icon, l.Title, len(l.Restaurants))
				}
				return nil
			})
		},
	}
	refresh.Flags().Float64Var(&lat, "lat", 0, "Latitude to bias results toward")
	refresh.Flags().Float64Var(&lng, "lng", 0, "Longitude to bias results toward")

	curated.AddCommand(refresh)
	return curated
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// newTable returns a borderless table with a bold header row.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func writeUsers(out io.Writer, profiles []domain.UserProfile) {
	t := newTable("ID", "USERNAME", "NAME", "FOLLOWERS", "FOLLOWING", "VISITS")
	for _, p := range profiles {
		t.Row(p.ID, p.Username, p.Name,
			strconv.Itoa(len(p.Followers)), strconv.Itoa(len(p.Following)), strconv.Itoa(len(p.Diary)))
	}
	fmt.Fprintln(out, t.String())
}

func writeLists(out io.Writer, lists []domain.UserList) {
	t := newTable("ID", "NAME", "RESTAURANTS", "UPDATED")
	for _, l := range lists {
		updated := time.UnixMilli(l.UpdatedAt).UTC().Format(time.DateTime)
		t.Row(l.ID, l.Icon+" "+l.Name, strconv.Itoa(len(l.Restaurants)), updated)
	}
	fmt.Fprintln(out, t.String())
}
