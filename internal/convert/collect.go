package convert

import (
	"github.com/danieljhkim/transheet/internal/sheet"
	"github.com/danieljhkim/transheet/internal/tree"
)

// DomainIDs is the reconciled identifier order of one domain.
type DomainIDs struct {
	Domain string
	IDs    []string
}

// CollectIDs merges the identifiers of every locale of each domain into one
// ordered list per domain.
//
// Locales are walked in registry order, so the first locale's order is the
// backbone. An identifier first seen in a later locale goes after the
// identifier that preceded it in that locale's own walk, past any directly
// following identifiers the locale does not have. An identifier with no
// predecessor in its walk is appended.
func CollectIDs(c *Catalog) []DomainIDs {
	locales := c.Locales()
	out := make([]DomainIDs, 0, len(c.domains))

	for _, domain := range c.domains {
		ids := NewIDList()
		for _, locale := range locales {
			t, ok := c.Tree(domain, locale)
			if !ok {
				continue
			}

			own := make(map[string]struct{}, t.LeafCount())
			for path := range tree.Flatten(t) {
				own[path.String()] = struct{}{}
			}
			foreign := func(id string) bool {
				_, ok := own[id]
				return !ok
			}

			var last string
			hasLast := false
			for path := range tree.Flatten(t) {
				id := path.String()
				if hasLast {
					ids.InsertAfterFunc(id, last, foreign)
				} else {
					ids.Append(id)
				}
				last, hasLast = id, true
			}
		}
		out = append(out, DomainIDs{Domain: domain, IDs: ids.IDs()})
	}
	return out
}

// EmitRows builds one row per identifier of domain: domain, id, then one
// cell per registered locale holding that locale's value or "".
func EmitRows(domain string, ids []string, c *Catalog) []*sheet.Row {
	locales := c.Locales()

	values := make(map[string]map[string]string, len(locales))
	for _, locale := range locales {
		t, ok := c.Tree(domain, locale)
		if !ok {
			continue
		}
		m := make(map[string]string)
		for path, value := range tree.Flatten(t) {
			m[path.String()] = value
		}
		values[locale] = m
	}

	rows := make([]*sheet.Row, 0, len(ids))
	for _, id := range ids {
		row := sheet.NewRow()
		row.Set(sheet.FieldDomain, domain)
		row.Set(sheet.FieldID, id)
		for _, locale := range locales {
			row.Set(locale, values[locale][id])
		}
		rows = append(rows, row)
	}
	return rows
}

// TreesToRows runs CollectIDs and EmitRows over every domain of c.
func TreesToRows(c *Catalog) []*sheet.Row {
	var rows []*sheet.Row
	for _, d := range CollectIDs(c) {
		rows = append(rows, EmitRows(d.Domain, d.IDs, c)...)
	}
	return rows
}
