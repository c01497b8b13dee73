package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[Field]FieldDefinition)
	registryMu sync.RWMutex
)

func init() {
	Register(FieldDefinition{
		Field:   FieldName,
		Label:   "Наименование",
		Order:   0,
		Aliases: []string{"название", "продукт", "товар", "наименование"},
	})
	Register(FieldDefinition{
		Field:   FieldPrice,
		Label:   "Цена",
		Order:   1,
		Aliases: []string{"цена", "розница"},
	})
	Register(FieldDefinition{
		Field:   FieldWeight,
		Label:   "Вес",
		Order:   2,
		Aliases: []string{"фасовка", "масса", "вес"},
	})
}

// Register adds a canonical field definition to the registry.
// Panics if a field with the same key is already registered.
func Register(def FieldDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Field]; exists {
		panic(fmt.Sprintf("field already registered: %s", def.Field))
	}

	registry[def.Field] = def
}

// Get returns a field definition by key.
// Returns false if not found.
func Get(field Field) (FieldDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[field]
	return def, ok
}

// Fields returns all registered field definitions in schema order.
func Fields() []FieldDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]FieldDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Field < result[j].Field
	})

	return result
}

// ResolveColumns finds, for every registered field, the first header whose
// trimmed text is one of the field's aliases.
// Returns a MissingColumnError listing every field without a match.
func ResolveColumns(file string, headers []string) (ColumnMap, error) {
	cols := make(ColumnMap, 3)
	var missing []Field

	for _, def := range Fields() {
		pos := -1
		for i, h := range headers {
			if def.Matches(CleanHeader(h)) {
				pos = i
				break
			}
		}
		if pos < 0 {
			missing = append(missing, def.Field)
			continue
		}
		cols[def.Field] = pos
	}

	if len(missing) > 0 {
		return nil, &MissingColumnError{File: file, Missing: missing}
	}

	return cols, nil
}
