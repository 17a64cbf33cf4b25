// Package mongo wraps connection setup for the official MongoDB driver.
//
// New dials the server with pool settings from the env-tagged Config and
// retries the initial connection a configurable number of times, which
// smooths over container orchestration races where the database comes up a
// few seconds after the service. Healthcheck returns a ping function suitable
// for readiness probes.
package mongo
