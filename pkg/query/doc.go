// Package query translates listing parameters into parameterized SQL.
//
// A caller passes a resource, a raw filter of the form
// "key:value;key2:value2", a sort of the form "column+" or "column-" and a
// limit/page pair. Keys and columns are looked up in the resource's
// whitelists, so only known physical columns ever reach the SQL text. Values,
// limit and offset are bound parameters.
//
//	stmt, err := query.NewTranslator().Translate(query.Users, query.Request{
//		Filter: "last_name:Carlsen",
//		Sort:   "id+",
//		Limit:  5,
//	})
package query
