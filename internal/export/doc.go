// Package export renders extracted results as text, CSV, JSON or XLSX.
//
// Renderers are stateless. A document is one or more sections, one per
// category; single-page extractions produce a single untitled section.
package export
