// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued parameters given on the command line or
// in a query string.
package query

import "strings"

// List splits a comma-separated value into trimmed, non-empty items. The
// first occurrence of a repeated item wins. An empty input yields nil.
func List(raw string) []string {
	var items []string
	seen := make(map[string]bool)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items
}
