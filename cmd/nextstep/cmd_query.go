package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nextstep/internal/content"
	"nextstep/internal/domain"
	"nextstep/internal/page"
	"nextstep/internal/query"
	"nextstep/internal/store"
)

var domains = []string{"careers", "resources", "stories", "multimedia", "streams", "timeline", "interviews", "resume"}

var (
	queryText    string
	queryFilters []string
	queryMin     float64
	queryMax     float64
	querySort    string
	queryPage    int
	queryPerPage int
)

var queryCmd = &cobra.Command{
	Use:   "query <domain>",
	Short: "Search, filter, sort and page a content listing",
	Long: `Run the listing pipeline over one content domain.

Domains: careers, resources, stories, multimedia, streams, timeline,
interviews, resume.

The saved profile's user type is preselected as a filter; pass
--filter userType= to clear it.

Examples:
  nextstep query careers --q python --filter industry=technology,design
  nextstep query careers --min 80000 --sort salarydesc
  nextstep query resources --filter type=article --sort oldest --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var openCmd = &cobra.Command{
	Use:   "open <domain> <id>",
	Short: "Show one item and record it as recently viewed",
	Args:  cobra.ExactArgs(2),
	RunE:  runOpen,
}

func init() {
	queryCmd.Flags().StringVar(&queryText, "q", "", "free-text query")
	queryCmd.Flags().StringArrayVar(&queryFilters, "filter", nil, "filter as name=v1,v2 (repeatable)")
	queryCmd.Flags().Float64Var(&queryMin, "min", 0, "lower range bound (careers salary)")
	queryCmd.Flags().Float64Var(&queryMax, "max", 0, "upper range bound (careers salary)")
	queryCmd.Flags().StringVar(&querySort, "sort", "", "sort mode: az, za, newest, oldest, salaryasc, salarydesc")
	queryCmd.Flags().IntVar(&queryPage, "page", 1, "page number")
	queryCmd.Flags().IntVar(&queryPerPage, "per-page", 0, "page size (0 keeps the listing default)")

	rootCmd.AddCommand(queryCmd, openCmd)
}

// parseFilters turns repeated name=v1,v2 flags into selections. Repeating a
// name adds to its values; an empty value list clears the filter.
func parseFilters(raw []string) (map[string][]string, []string, error) {
	out := make(map[string][]string)
	var order []string
	for _, f := range raw {
		name, vals, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid --filter %q, want name=value", f)
		}
		if _, seen := out[name]; !seen {
			order = append(order, name)
			out[name] = nil
		}
		for _, v := range strings.Split(vals, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out[name] = append(out[name], v)
			}
		}
	}
	return out, order, nil
}

func applyFlags[T domain.Item](cmd *cobra.Command, c *page.Controller[T]) error {
	filters, order, err := parseFilters(queryFilters)
	if err != nil {
		return err
	}
	if queryText != "" {
		c.SetQuery(queryText)
	}
	for _, name := range order {
		c.SetFilter(name, filters[name]...)
	}
	var lower, upper *float64
	if cmd.Flags().Changed("min") {
		lower = query.Float(queryMin)
	}
	if cmd.Flags().Changed("max") {
		upper = query.Float(queryMax)
	}
	if lower != nil || upper != nil {
		c.SetRange(lower, upper)
	}
	if querySort != "" {
		c.SetSort(querySort)
	}
	if queryPerPage > 0 {
		c.SetPageSize(queryPerPage)
	}
	c.SetPage(queryPage)
	return nil
}

func careerLine(c domain.Career) string {
	s := c.Title + " • " + domain.Capitalize(c.Industry)
	if c.SalaryMax > 0 {
		s += fmt.Sprintf(" • %.0f–%.0f", c.SalaryMin, c.SalaryMax)
	}
	return s
}

func resourceLine(r domain.Resource) string {
	return fmt.Sprintf("%s • %s • %s", r.Title, r.Type, r.Date)
}

func storyLine(s domain.Story) string {
	return fmt.Sprintf("%s • %s", s.Label(), s.Domain)
}

func mediaLine(m domain.MediaItem) string {
	return fmt.Sprintf("%s • %s • %s", m.Title, m.Format, m.Date)
}

func labelLine[T domain.Item](it T) string { return it.Label() }

// listing binds one content domain to its pipeline config.
type listing interface {
	list(cmd *cobra.Command, st *store.Store) error
	open(cmd *cobra.Command, st *store.Store, id string) error
	entry(id string) (domain.BookmarkEntry, bool)
}

type domainListing[T domain.Item] struct {
	cfg   query.Config[T]
	items []T
	line  func(T) string
}

func (l domainListing[T]) list(cmd *cobra.Command, st *store.Store) error {
	ctx := cmd.Context()
	c := page.New(l.cfg, l.items, page.Options{UserType: st.Profile(ctx).UserType})
	if err := applyFlags(cmd, c); err != nil {
		return err
	}
	res := c.Result()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: page %d/%d, %d results\n", l.cfg.Name, res.Page, res.TotalPages, res.Total)
	if len(res.Items) == 0 {
		fmt.Fprintln(w, "No results. Try clearing filters.")
		return nil
	}
	for _, it := range res.Items {
		mark := " "
		if st.IsBookmarked(ctx, it.ItemID()) {
			mark = "★"
		}
		fmt.Fprintf(w, "%s %-10s %s\n", mark, it.ItemID(), l.line(it))
	}
	return nil
}

func (l domainListing[T]) open(cmd *cobra.Command, st *store.Store, id string) error {
	c := page.New(l.cfg, l.items, page.Options{Recents: st})
	it, ok, err := c.Open(cmd.Context(), id)
	if !ok {
		return fmt.Errorf("%s: no item with id %q", l.cfg.Name, id)
	}
	if err != nil {
		current.log.WithError(err).Warn("Failed to record recent entry")
	}
	return writeYAML(cmd.OutOrStdout(), it)
}

func (l domainListing[T]) entry(id string) (domain.BookmarkEntry, bool) {
	c := page.New(l.cfg, l.items, page.Options{})
	it, ok := c.Find(id)
	if !ok {
		return domain.BookmarkEntry{}, false
	}
	return c.Entry(it), true
}

func listings(cat *content.Catalog) map[string]listing {
	return map[string]listing{
		"careers":    domainListing[domain.Career]{query.Careers(), cat.Careers, careerLine},
		"resources":  domainListing[domain.Resource]{query.Resources(), cat.Resources, resourceLine},
		"stories":    domainListing[domain.Story]{query.Stories(), cat.Stories, storyLine},
		"multimedia": domainListing[domain.MediaItem]{query.Media(), cat.Media, mediaLine},
		"streams":    domainListing[domain.Stream]{query.Streams(), cat.Admissions.Streams, labelLine[domain.Stream]},
		"timeline":   domainListing[domain.TimelineStep]{query.Timeline(), cat.Admissions.Timeline, labelLine[domain.TimelineStep]},
		"interviews": domainListing[domain.InterviewTip]{query.Interviews(), cat.Admissions.Interviews, labelLine[domain.InterviewTip]},
		"resume":     domainListing[domain.ResumeSection]{query.ResumeSections(), cat.Admissions.Resume, labelLine[domain.ResumeSection]},
	}
}

func lookupListing(cmd *cobra.Command, name string) (listing, error) {
	l, ok := listings(current.catalog(cmd))[name]
	if !ok {
		return nil, fmt.Errorf("unknown domain %q (want one of %s)", name, strings.Join(domains, ", "))
	}
	return l, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to render item: %w", err)
	}
	return enc.Close()
}

func runQuery(cmd *cobra.Command, args []string) error {
	l, err := lookupListing(cmd, args[0])
	if err != nil {
		return err
	}
	return l.list(cmd, current.store())
}

func runOpen(cmd *cobra.Command, args []string) error {
	l, err := lookupListing(cmd, args[0])
	if err != nil {
		return err
	}
	return l.open(cmd, current.store(), args[1])
}
