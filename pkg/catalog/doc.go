// Package catalog holds the ready-made stores the rstore CLI and live view
// work with: bugs and hoopers (local lists), countries (full CRUD), products
// (read-only) and weather (a keyed record loaded per city).
package catalog
