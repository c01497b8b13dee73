// Package templates renders the aggregate price table as HTML.
//
// Components are written in prices.templ and compiled with `templ generate`,
// so the same table is used for the static export file and for the browse
// server pages. This file holds the plain Go helpers they call.
package templates

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/pricelist/internal/core"
)

// Columns lists the exported columns in output order.
var Columns = []string{"name", "price", "weight", "price_per_kg", "file"}

// DocumentParams holds everything a full price page needs.
type DocumentParams struct {
	Title    string
	RunID    string
	LoadedAt time.Time
	Query    string // Non-empty when the page shows search results
	Search   bool   // Render the search form
	Records  []core.Record
}

// FormatPerKg renders a unit price with full precision.
func FormatPerKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MetaLine describes the load run shown above the table.
func MetaLine(p DocumentParams) string {
	return "Загрузка " + p.RunID + " от " + p.LoadedAt.Format(time.DateTime) +
		", записей: " + strconv.Itoa(len(p.Records))
}

// showNothingFound reports whether a search page has no hits to list.
func showNothingFound(p DocumentParams) bool {
	return p.Search && len(p.Records) == 0
}
