// Package server exposes the metrics collector over HTTP for scraping while
// the CLI runs.
package server
