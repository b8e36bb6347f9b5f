package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewParsesLevel(t *testing.T) {
	l := New("teapos-api", "debug")
	if l.Logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", l.Logger.GetLevel())
	}
	if l.Data["service"] != "teapos-api" {
		t.Fatalf("expected service field, got %v", l.Data)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	if got := New("x", "loud").Logger.GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", got)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatalf("expected a logger")
	}
	l := New("x", "info")
	if OrDiscard(l) != l {
		t.Fatalf("expected the given logger back")
	}
}
