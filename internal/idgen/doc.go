// Package idgen wraps the UUID generator used for boot and message
// identifiers so that tests can stub it. Callers treat identifiers as opaque
// strings.
package idgen
