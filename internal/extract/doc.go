// Package extract turns a publisher's raw results page into canonical
// result.Result records.
//
// Extraction is string and marker based, mirroring how the publishers emit
// their pages: Locate bounds the results table, SplitTable cuts it into a
// header and positional data rows, ResolveHeader maps column roles to
// positions using the variant's label dictionary, and each row is projected
// into a Result through NormalizeName and result.SanitizeRank.
//
// The package performs no I/O and keeps no state between calls. Frameset
// shells are reported through FramesetTarget so the caller can refetch.
package extract
