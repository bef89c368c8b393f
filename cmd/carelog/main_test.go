package main

import (
	"testing"

	applog "carelog/internal/log"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	if err != nil {
		t.Fatalf("valid level: %v", err)
	}
	if logger == nil {
		t.Fatal("logger is nil")
	}
	if logger.Component() != applog.ComponentApp {
		t.Fatalf("got component %q, want %q", logger.Component(), applog.ComponentApp)
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	logger, err := newLogger("verbose")
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	// Logger must still be usable so the error can be reported through it
	if logger == nil {
		t.Fatal("logger should be returned even on error")
	}
}
