// Package panel renders the GroupTrail map page.
//
// The HTML template and its static assets (script, stylesheet) are embedded
// into the binary with go:embed. The page lists the groups supplied by the
// caller and fetches trails from /api/locations in the browser; the server
// never renders location data itself.
package panel
