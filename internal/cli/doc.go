// Package cli implements the command-line interface for fencing-results.
//
// The cli package provides the Cobra-based commands: sources lists the known
// result publishers, extract pulls one results table, event crawls an event
// index for several age categories, and import loads a results table into
// the SQLite results database. It coordinates the config, scraper, event,
// export and storage packages.
package cli
