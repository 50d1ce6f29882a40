// Package scraper fetches publisher pages and runs them through the
// extraction engine.
//
// Pages are read over HTTP or from local files and decoded to UTF-8 using
// the charset the server or the page itself declares. A frameset shell is
// followed once to the results page it names. Each run is logged and
// counted in the default metrics.
package scraper
