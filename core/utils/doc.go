// Package utils provides common utility functions for the sync application.
// It includes helper functions for type conversion of loosely typed API values
// (custom fields, query parameters) that don't fit into domain-specific packages.
package utils
