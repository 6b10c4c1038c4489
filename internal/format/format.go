// Package format sanitizes user text keys and values and formats numbers for
// display. Keys live in the document in snake_case; values are stored
// title-cased with spaces.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rhyton-cad/rhyton"
)

// Key sanitizes a caller-supplied key: whitespace becomes underscores and
// the result is lowercased.
func Key(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, " ", "_"))
}

// Value sanitizes a value for storage: underscores become spaces and each
// word is title-cased.
func Value(value string) string {
	return title(strings.ReplaceAll(value, "_", " "))
}

// DisplayKey formats a snake_case key for display, optionally stripping a
// prefix first.
//
//	DisplayKey("xyz_some_area", "xyz_") == "Some Area"
func DisplayKey(key, rmPrefix string) string {
	if rmPrefix != "" {
		key = strings.TrimPrefix(key, rmPrefix)
	}
	return title(strings.ReplaceAll(key, "_", " "))
}

// Number formats a number for display using the extension's rounding
// precision and unit suffix. Keys containing "area" or "volume" get squared
// and cubed unit suffixes.
func Number(cfg rhyton.Config, number float64, key string) string {
	suffix := cfg.UnitSuffix
	lower := strings.ToLower(key)
	if strings.Contains(lower, "area") {
		suffix = cfg.UnitSuffix + "2"
	}
	if strings.Contains(lower, "volume") {
		suffix = cfg.UnitSuffix + "3"
	}

	if cfg.RoundingDecimals == 0 {
		return fmt.Sprintf("%d %s", int64(number), suffix)
	}
	return fmt.Sprintf("%s %s", trimZeros(number, cfg.RoundingDecimals), suffix)
}

// trimZeros rounds to the given number of decimals and drops trailing zeros,
// matching how the host displays rounded values.
func trimZeros(number float64, decimals int) string {
	s := strconv.FormatFloat(number, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// title upper-cases the first letter of each space-separated word.
func title(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Grouped is a set of object ids sharing the same values for the grouping
// keys.
type Grouped struct {
	Values map[string]string
	IDs    []string
}

// GroupIDsBy merges records that share the same values for the given keys.
// Each output entry keeps only the grouping keys plus the collected object
// ids; all other record fields are dropped to prevent ambiguity. Output
// order follows the first appearance of each value combination.
func GroupIDsBy(rows []map[string]string, keys []string) []Grouped {
	var order []string
	merged := make(map[string]*Grouped)

	for _, row := range rows {
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = row[key]
		}
		sig := strings.Join(parts, "\x00")

		group, ok := merged[sig]
		if !ok {
			values := make(map[string]string, len(keys))
			for i, key := range keys {
				values[key] = parts[i]
			}
			group = &Grouped{Values: values}
			merged[sig] = group
			order = append(order, sig)
		}
		group.IDs = append(group.IDs, row[rhyton.GUIDKey])
	}

	out := make([]Grouped, 0, len(order))
	for _, sig := range order {
		out = append(out, *merged[sig])
	}
	return out
}

// UnionKeys returns the sorted union of all keys present across the records.
// Used for CSV headers.
func UnionKeys(rows []map[string]string) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
