// Package variant describes the result publishers the extractor understands.
//
// Each publisher is a Variant: a pure configuration value listing the markers
// that bound its results table, how its rows split into cells, the header
// labels it uses for each column role and how its name column is split. The
// values are built once at package init and are safe for concurrent reads.
package variant
