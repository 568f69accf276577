package rcsplog

import (
	"testing"

	"github.com/rcspp-go/rcspp/pkg/config"
)

func TestInit(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, level := range levels {
		Init(config.LogConfig{Level: level, Format: "json", Output: "stdout"})
		if Log == nil {
			t.Errorf("Init(%s) should set Log", level)
		}
	}
}

func TestInit_TextFormat(t *testing.T) {
	Init(config.LogConfig{Level: "info", Format: "text", Output: "stdout"})
	if Log == nil {
		t.Fatal("Log should not be nil")
	}
}

func TestWithRun(t *testing.T) {
	Init(config.LogConfig{Level: "info", Format: "json", Output: "stdout"})
	l := WithRun("run-123")
	if l == nil {
		t.Fatal("WithRun returned nil")
	}
}

func TestWithPhase(t *testing.T) {
	Init(config.LogConfig{Level: "info", Format: "json", Output: "stdout"})
	l := WithPhase("search")
	if l == nil {
		t.Fatal("WithPhase returned nil")
	}
}
