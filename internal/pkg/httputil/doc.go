// Package httputil provides shared HTTP response utilities for handlers.
//
// Every handler file should use these helpers instead of writing raw
// http.ResponseWriter calls. This ensures consistent JSON formatting and
// error structures across all endpoints.
package httputil
