// Package testmodels holds the shared model types used by the repository
// backend tests. Not intended for use outside this module's test suites.
package testmodels
