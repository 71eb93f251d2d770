package view

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllFilter is the filter key that selects every item.
const AllFilter = "all"

// FilterKeys collects the distinct non-empty values of field across items
// in first-seen order, prefixed with AllFilter.
func FilterKeys[T any](items []T, field func(T) []string) []string {
	keys := []string{AllFilter}
	seen := map[string]struct{}{AllFilter: {}}
	for _, item := range items {
		for _, value := range field(item) {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			keys = append(keys, value)
		}
	}
	return keys
}

// Filter returns items whose field contains key. AllFilter returns items
// unchanged.
func Filter[T any](items []T, key string, field func(T) []string) []T {
	if key == AllFilter {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, value := range field(item) {
			if strings.TrimSpace(value) == key {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Group is one labelled section of a grouped list.
type Group[T any] struct {
	Label string
	Items []T
}

// GroupBy partitions items by label, keeping first-seen label order.
func GroupBy[T any](items []T, label func(T) string) []Group[T] {
	var groups []Group[T]
	index := map[string]int{}
	for _, item := range items {
		l := label(item)
		i, ok := index[l]
		if !ok {
			i = len(groups)
			index[l] = i
			groups = append(groups, Group[T]{Label: l})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// FormatMonthYear renders "March 2024".
func FormatMonthYear(t time.Time) string {
	if t.IsZero() {
		return FallbackDate
	}
	return t.Format("January 2006")
}

// FormatLongDate renders "March 5, 2024", used in blog contexts.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return FallbackDate
	}
	return t.Format("January 2, 2006")
}

// Label turns a raw filter key into a button label ("web" -> "Web").
func Label(key string) string {
	if key == AllFilter {
		return "All"
	}
	// Casers carry state and are not safe to share.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "-", " "))
}

// TotalPages is ceil(count/pageSize).
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Truncate shortens s to at most n runes, appending an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if n <= 0 || len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
