// Package connectors groups the external data sources the catalog is
// scraped from. Each sub-package implements the generic Source port
// for one site: it knows how to fetch that site's pages and parse
// them into domain records.
//
// Sub-packages:
//   - dac: the Unicamp undergraduate catalog (disciplines and courses)
package connectors
