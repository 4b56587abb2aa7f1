// Package api serves the cookbook REST endpoints over net/http.
//
// List endpoints accept the query parameters filter ("key:value;key2:value2"),
// sort ("column+" or "column-"), limit and page. Every failure is answered
// with an ErrorResponse; validation failures map to 400, empty listings and
// unknown ids to 404 and storage failures to 500.
package api
