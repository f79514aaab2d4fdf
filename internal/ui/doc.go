// Package ui renders subprocess lifecycle events as human-readable log lines.
package ui
