// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key check (X-API-Key or Bearer token) protecting the sync endpoints.
//   - rayid: assigns a request id (uuid) stored in the "ray_id" local and the
//     X-Ray-ID response header, picked up by logger.WithRayID.
//
// Both are registered globally by the serve command, rayid first.
package middleware
