package logger_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cwrk-planet/conference-service/pkg/logger"
)

func captureStdOut(fn func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() {
		os.Stdout = orig
	}()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func TestInit_DevStd_TextOutput(t *testing.T) {
	cfg := logger.Config{
		Service: "demo",
		Version: "v0.0.1",
		Env:     logger.EnvDev,
		Backend: logger.BackendStd,
		Level:   slog.LevelDebug,
	}

	out := captureStdOut(func() {
		logger.Init(cfg)
		slog.Info("Hello world")
	})

	if strings.Contains(out, "{") && strings.Contains(out, "}") {
		t.Fatalf("expected text output in dev/std, got JSON: %s", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, "service=demo") {
		t.Fatalf("service attr missing: %s", out)
	}
	if !strings.Contains(out, "env=dev") {
		t.Fatalf("env attr missing: %s", out)
	}
}

func TestInit_ProdZap_JSONOutput(t *testing.T) {
	cfg := logger.Config{
		Service: "demo",
		Version: "v0.0.1",
		Env:     logger.EnvProd,
		Backend: logger.BackendZap,
	}

	out := captureStdOut(func() {
		logger.Init(cfg)
		slog.Info("Hello json")
	})

	if !strings.Contains(out, "{") || !strings.Contains(out, `"msg"`) {
		t.Fatalf("expected JSON output in prod/zap: %s", out)
	}
	if !strings.Contains(out, "Hello json") {
		t.Fatalf("message missing: %s", out)
	}
}

func TestDetectEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if env := logger.DetectEnv(); env != logger.EnvProd {
		t.Fatalf("env = %q, want prod", env)
	}

	t.Setenv("APP_ENV", "staging")
	if env := logger.DetectEnv(); env != logger.EnvStage {
		t.Fatalf("env = %q, want stage", env)
	}

	t.Setenv("APP_ENV", "")
	if env := logger.DetectEnv(); env != logger.EnvDev {
		t.Fatalf("env = %q, want dev", env)
	}
}
