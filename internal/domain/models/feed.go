package models

import "sort"

// UnselectedFeed is the placeholder shown before a feed is picked.
const UnselectedFeed = "--- select feed ---"

// FeedEntry is the per-kg composition of one feed.
type FeedEntry struct {
	Name       string          `json:"name"`
	Descriptor string          `json:"descriptor,omitempty"`
	Nutrients  []NutrientValue `json:"nutrients"`
}

// FeedCatalog is the feed composition table keyed by feed name.
type FeedCatalog struct {
	NameColumn string
	Columns    []string
	entries    map[string]FeedEntry
	names      []string
}

// NewFeedCatalog indexes entries by name. The first entry wins on duplicate names.
func NewFeedCatalog(nameColumn string, columns []string, entries []FeedEntry) FeedCatalog {
	catalog := FeedCatalog{
		NameColumn: nameColumn,
		Columns:    append([]string(nil), columns...),
		entries:    make(map[string]FeedEntry, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, exists := catalog.entries[e.Name]; exists {
			continue
		}
		catalog.entries[e.Name] = e
		catalog.names = append(catalog.names, e.Name)
	}
	sort.Strings(catalog.names)
	return catalog
}

// Lookup returns the composition of a feed.
func (c FeedCatalog) Lookup(name string) (FeedEntry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Names returns the distinct feed names in sorted order.
func (c FeedCatalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Options returns the selection list: the placeholder followed by every feed name.
func (c FeedCatalog) Options() []string {
	return append([]string{UnselectedFeed}, c.names...)
}

// Len reports the number of distinct feeds.
func (c FeedCatalog) Len() int {
	return len(c.names)
}

// Catalog bundles the reference data a session computes against.
type Catalog struct {
	Requirements RequirementTables
	Feeds        FeedCatalog
}
