package bmlambda_test

import (
	"testing"

	"github.com/synapsehq/budgetmaker/bmlambda"
	"go.uber.org/zap/zapcore"
)

func TestParseEnv_Defaults(t *testing.T) {
	env, err := bmlambda.ParseEnv[bmlambda.BaseEnvironment]()()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if env.ServiceName != "budgetmaker" {
		t.Errorf("ServiceName = %q, want %q", env.ServiceName, "budgetmaker")
	}
	if env.LogLevel != zapcore.InfoLevel {
		t.Errorf("LogLevel = %v, want info", env.LogLevel)
	}
	if env.OtelExporter != "xrayudp" {
		t.Errorf("OtelExporter = %q, want %q", env.OtelExporter, "xrayudp")
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "budgetmaker-test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER", "stdout")

	env, err := bmlambda.ParseEnv[bmlambda.BaseEnvironment]()()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if env.ServiceName != "budgetmaker-test" {
		t.Errorf("ServiceName = %q, want %q", env.ServiceName, "budgetmaker-test")
	}
	if env.LogLevel != zapcore.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", env.LogLevel)
	}
	if env.OtelExporter != "stdout" {
		t.Errorf("OtelExporter = %q, want %q", env.OtelExporter, "stdout")
	}
}

type customEnv struct {
	bmlambda.BaseEnvironment
	Extra string `env:"EXTRA_SETTING"`
}

func TestParseEnv_CustomEnvironment(t *testing.T) {
	t.Setenv("EXTRA_SETTING", "value")

	env, err := bmlambda.ParseEnv[customEnv]()()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if env.Extra != "value" {
		t.Errorf("Extra = %q, want %q", env.Extra, "value")
	}
}

func TestParseEnv_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")

	_, err := bmlambda.ParseEnv[bmlambda.BaseEnvironment]()()
	if err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}
