// Package event handles whole competitions: an index page listing one
// results page per age category, crawled and extracted as a unit.
//
// Categories are matched to caller-supplied category ids by position on the
// index page. An id of 0 excludes a category (team events, categories not
// tracked), so the id list doubles as a filter.
package event
