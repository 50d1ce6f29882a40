// Package result defines the canonical ranked-competitor record produced by
// every source parser, together with the rank sanitizer and the rank to points
// bracket table.
//
// A Result is built once per extracted row and never modified afterwards.
// Non-finishers (DNF, DNS, blank or dashed ranks) carry SentinelRank so that
// ordering and points lookup stay total.
package result
