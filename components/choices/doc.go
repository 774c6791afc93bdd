// Package choices provides searchable option catalogs for select and radio
// fields, a small net/http handler that returns JSON options for dynamic
// inputs, and a decorator that populates field options from a catalog.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results.
package choices
