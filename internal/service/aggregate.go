package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rowestoli/QuackLog/internal"
)

// GroupByDate partitions submissions into one group per distinct date,
// newest date first. Submissions with an empty date are excluded. Within a
// group the input order is preserved, so callers that fetch in
// created_at-descending order keep that ordering per date.
//
// Dates are ISO YYYY-MM-DD strings, so lexicographic comparison is
// chronological.
func GroupByDate(subs []internal.LogSubmission) []internal.DateGroup {
	buckets := make(map[string][]internal.LogSubmission)
	for _, sub := range subs {
		if sub.Date == "" {
			continue
		}
		buckets[sub.Date] = append(buckets[sub.Date], sub)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]internal.DateGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, internal.DateGroup{Date: date, Submissions: buckets[date]})
	}
	return groups
}

// SummarizeRecent rolls the given submissions up into one feed entry per
// distinct date, newest date first. The caller bounds the input to the most
// recent N submissions via the repository query.
//
// TotalBirds sums every entry quantity for the date, counting unparsable
// quantities as zero. BlindDisplay is the sole distinct non-empty blind, a
// comma-joined list in first-seen order when there are several, or empty
// when none.
func SummarizeRecent(subs []internal.LogSubmission) []internal.RecentFeedEntry {
	type rollup struct {
		total  int
		blinds []string
		seen   map[string]bool
	}

	buckets := make(map[string]*rollup)
	for _, sub := range subs {
		if sub.Date == "" {
			continue
		}
		r, ok := buckets[sub.Date]
		if !ok {
			r = &rollup{seen: make(map[string]bool)}
			buckets[sub.Date] = r
		}
		for _, entry := range sub.Entries {
			r.total += ParseQuantity(entry.Quantity)
		}
		if sub.Blind != "" && !r.seen[sub.Blind] {
			r.seen[sub.Blind] = true
			r.blinds = append(r.blinds, sub.Blind)
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	feed := make([]internal.RecentFeedEntry, 0, len(dates))
	for _, date := range dates {
		r := buckets[date]
		feed = append(feed, internal.RecentFeedEntry{
			Date:         date,
			TotalBirds:   r.total,
			BlindDisplay: strings.Join(r.blinds, ", "),
		})
	}
	return feed
}

// ParseQuantity parses a stored quantity string, returning 0 when it does
// not parse.
func ParseQuantity(q string) int {
	n, err := strconv.Atoi(strings.TrimSpace(q))
	if err != nil {
		return 0
	}
	return n
}

// DisplaySpecies resolves the display name of an entry: the custom text
// substitutes for the Other sentinel only at display time, never in storage.
func DisplaySpecies(entry internal.BirdLogEntry) string {
	if entry.Species == internal.SpeciesOther && entry.CustomSpecies != "" {
		return entry.CustomSpecies
	}
	return entry.Species
}

// PluralizeSpecies appends a trailing "s" for quantities other than one.
// Known-wrong for irregular plurals ("Goose" becomes "Gooses"); kept as the
// documented display behavior.
func PluralizeSpecies(name string, qty int) string {
	if qty == 1 {
		return name
	}
	return name + "s"
}

// FormatEntryLine renders one entry the way the all-logs view shows it,
// e.g. "3 Mallards (M) at North Levee".
func FormatEntryLine(entry internal.BirdLogEntry, blind string) string {
	qty := ParseQuantity(entry.Quantity)
	name := PluralizeSpecies(DisplaySpecies(entry), qty)
	sexShort := ""
	switch entry.Sex {
	case "Male":
		sexShort = " (M)"
	case "Female":
		sexShort = " (F)"
	}
	if blind == "" {
		blind = "No Blind"
	}
	return fmt.Sprintf("%d %s%s at %s", qty, name, sexShort, blind)
}
