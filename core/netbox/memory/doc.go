// Package memory provides an in-memory netbox.Registry.
//
// Objects are stored in their JSON shape so that references written as bare
// ids decode the same way they would from the API. Every write is appended to
// a journal which tests use to assert on the exact requests a run issued.
package memory
