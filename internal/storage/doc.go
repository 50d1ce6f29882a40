// Package storage imports extracted results into a SQLite results database.
//
// An import goes through a holding table: rows are inserted under a batch
// id, linked to known fencers by exact name and to clubs through the club
// alias table, then promoted into the results table. Rows that could not be
// linked stay in holding for manual follow-up.
//
// The default database lives at ~/.fencing-results/results.db.
package storage
