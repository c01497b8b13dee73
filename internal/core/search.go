package core

import (
	"sort"
	"strings"
)

// Search returns every record whose name contains query, ignoring case,
// ordered by ascending price per kg. Records with equal price per kg keep
// their load order. An empty query matches every record.
func (t *Table) Search(query string) []Record {
	needle := strings.ToLower(query)

	var hits []Record
	for _, r := range t.records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			hits = append(hits, r)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].PricePerKg < hits[j].PricePerKg
	})

	return hits
}

// Find is like Search but returns ErrEmptyResult when nothing matches.
func (t *Table) Find(query string) ([]Record, error) {
	hits := t.Search(query)
	if len(hits) == 0 {
		return nil, ErrEmptyResult
	}
	return hits, nil
}
