// Package api implements the GroupTrail HTTP server.
//
// Routes:
//
//	GET /                  map page listing all groups
//	GET /static/*          page script and stylesheet
//	GET /health            liveness plus a database ping
//	GET /api/groups        {"groups": [...], "count": n}
//	GET /api/locations     readings of one group in a date range
//
// /api/locations takes group_id, start_date and end_date (YYYY-MM-DD).
// Missing or unparseable parameters produce 400 {"error": "..."}; an unknown
// group or an empty range produce 200 []. The end date bound is midnight at
// the start of that day, so readings later on the end date are excluded.
//
// The server has no write endpoints and no authentication.
package api
