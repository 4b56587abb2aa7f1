package query

import "sort"

// Resource describes a listable table: its base query and the public names
// callers may filter and sort by, mapped to qualified physical columns.
// Resources are defined once and never mutated.
type Resource struct {
	name        string
	columns     []string
	from        string
	joins       []string
	filters     map[string]string
	sorts       map[string]string
	defaultSort string
}

// Users lists t_user joined with its country.
var Users = &Resource{
	name: "users",
	columns: []string{
		"tu.id",
		"tu.first_name",
		"tu.last_name",
		"tu.email",
		"tu.language",
		`tc.iso2 as "country_iso2"`,
	},
	from: "t_user tu",
	joins: []string{
		"t_country tc on tu.country_id = tc.id",
	},
	filters: map[string]string{
		"id":         "tu.id",
		"first_name": "tu.first_name",
		"last_name":  "tu.last_name",
		"email":      "tu.email",
	},
	sorts: map[string]string{
		"id":         "tu.id",
		"first_name": "tu.first_name",
		"last_name":  "tu.last_name",
		"email":      "tu.email",
	},
	defaultSort: "id+",
}

// Recipes lists t_recipe denormalized with author, category and the
// description and steps text blocks.
var Recipes = &Resource{
	name: "recipes",
	columns: []string{
		"tr.id",
		"tr.title",
		"tr.first_created",
		`tu.last_name as "author_last_name"`,
		`tu.email as "author_email"`,
		`tc.name as "category"`,
		`tt.text as "description"`,
		`tt2.text as "steps"`,
	},
	from: "t_recipe tr",
	joins: []string{
		"t_user tu on tu.id = tr.author_user_id",
		"t_category tc on tc.id = tr.category_id",
		"t_textblock tt on tt.id = tr.description_textblock_id",
		"t_textblock tt2 on tt2.id = tr.steps_textblock_id",
	},
	filters: map[string]string{
		"id":               "tr.id",
		"title":            "tr.title",
		"category":         "tc.name",
		"author_last_name": "tu.last_name",
		"author_email":     "tu.email",
	},
	sorts: map[string]string{
		"id":               "tr.id",
		"first_created":    "tr.first_created",
		"title":            "tr.title",
		"category":         "tc.name",
		"author_last_name": "tu.last_name",
		"author_email":     "tu.email",
	},
	defaultSort: "id+",
}

func (r *Resource) Name() string {
	return r.name
}

// FilterKeys returns the public filter names in lexical order.
func (r *Resource) FilterKeys() []string {
	return keys(r.filters)
}

// SortKeys returns the public sort names in lexical order.
func (r *Resource) SortKeys() []string {
	return keys(r.sorts)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
