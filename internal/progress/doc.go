// Package progress renders transfer counters for clone and download
// operations. Producers push counters without blocking; a single background
// goroutine draws the most recent one.
package progress
