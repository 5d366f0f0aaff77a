package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nextstep/internal/store"
)

var exportOut string

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage saved items",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksList,
}

var bookmarksToggleCmd = &cobra.Command{
	Use:   "toggle <domain> <id>",
	Short: "Bookmark an item, or remove it when already saved",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarksToggle,
}

var bookmarksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write bookmarks as plain text (Bookmarks.txt with --out)",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksExport,
}

var bookmarksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every bookmark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store().ClearBookmarks(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bookmarks cleared")
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show or clear recently viewed items",
	Args:  cobra.NoArgs,
	RunE:  runRecentList,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recent activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store().ClearRecent(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Recent activity cleared")
		return nil
	},
}

func init() {
	bookmarksExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to this file instead of stdout")
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksToggleCmd, bookmarksExportCmd, bookmarksClearCmd)
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(bookmarksCmd, recentCmd)
}

func runBookmarksList(cmd *cobra.Command, args []string) error {
	list := current.store().ListBookmarks(cmd.Context())
	w := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(w, "No bookmarks yet.")
		return nil
	}
	fmt.Fprintln(w, store.BookmarksText(list))
	return nil
}

func runBookmarksToggle(cmd *cobra.Command, args []string) error {
	l, err := lookupListing(cmd, args[0])
	if err != nil {
		return err
	}
	entry, ok := l.entry(args[1])
	if !ok {
		return fmt.Errorf("%s: no item with id %q", args[0], args[1])
	}
	saved, err := current.store().ToggleBookmark(cmd.Context(), entry)
	if err != nil {
		return err
	}
	if saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", entry.Label)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from bookmarks\n", entry.Label)
	}
	return nil
}

func runBookmarksExport(cmd *cobra.Command, args []string) error {
	st := current.store()
	if exportOut == "" {
		return st.ExportBookmarks(cmd.Context(), cmd.OutOrStdout())
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOut, err)
	}
	if err := st.ExportBookmarks(cmd.Context(), f); err != nil {
		f.Close()
		os.Remove(exportOut)
		if errors.Is(err, store.ErrNothingToExport) {
			return fmt.Errorf("no bookmarks to export")
		}
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported bookmarks to %s\n", exportOut)
	return nil
}

func runRecentList(cmd *cobra.Command, args []string) error {
	list := current.store().ListRecent(cmd.Context())
	w := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(w, "%s  %s (%s)\n", r.Time().Format("2006-01-02 15:04"), r.Label, r.Href)
	}
	return nil
}
