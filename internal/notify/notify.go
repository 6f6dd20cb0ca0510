// Package notify carries the one-shot operator notifications the scan
// pipeline raises. In the dashboard these surface as toasts; here a sink
// decides where they land.
package notify

import "log"

// Notifier receives at most one notification per processed scan event.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Log writes notifications to the process log.
type Log struct{}

func (Log) Success(msg string) { log.Printf("notify ok: %s", msg) }

func (Log) Error(msg string) { log.Printf("notify error: %s", msg) }

// Discard drops all notifications.
type Discard struct{}

func (Discard) Success(string) {}

func (Discard) Error(string) {}
