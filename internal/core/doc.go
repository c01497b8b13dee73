// Package core provides the business logic for price list aggregation.
//
// This package is the heart of the aggregator, containing all domain logic
// independent of any console, web or export layer. It can be used by the
// CLI, the browse server, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Canonical fields: name, price and weight, each recognized through a
//     fixed set of localized header aliases kept in the field registry.
//   - Loader: discovers price list files in a directory, maps their headers
//     onto the canonical fields and parses rows into records.
//   - Table: the immutable aggregate of every successfully loaded file.
//   - Search: case-insensitive substring lookup ordered by unit price.
//
// # Field Registry
//
// Canonical fields are registered at init time using [Register]:
//
//	core.Register(FieldDefinition{
//	    Field:   FieldName,
//	    Label:   "Наименование",
//	    Aliases: []string{"название", "продукт", "товар", "наименование"},
//	})
//
// Header matching is exact against the trimmed header text and case-sensitive.
// The first header that matches a field's alias set wins.
//
// # Loading
//
// Each file is processed on its own and yields a [FileResult]: either the
// parsed records or the reason the file was skipped. A single bad row fails
// the whole file; no partial rows are retained. The flow is:
//
//  1. [Loader.Load] lists the directory and keeps names containing the marker
//  2. Each file is decoded (BOM stripped, UTF-8 enforced) and split into rows
//  3. Headers are resolved against the registry
//  4. Rows are converted, price_per_kg = price / weight is computed once
//  5. Successful results are appended to the [Table] in a single phase
//
// # Error Handling
//
// Per-file failures are either a [MissingColumnError] or a [FileError].
// [MapError] turns any error into a coded user message for the console:
//
//   - PL001-PL003: column errors (missing column, row shape, quoting)
//   - PL010-PL014: file errors (read, encoding, number, zero weight, size)
//   - PL020-PL021: informational (empty search result, empty export)
//   - PL030-PL031: export target errors
//   - PL040-PL041: browse server errors
package core
