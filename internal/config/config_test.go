package config

import (
	"os"
	"path/filepath"
	"testing"

	"docsum/internal/domain"
	"docsum/internal/summarizer"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy() != domain.PolicyMedium || cfg.Summarizer.MinWords != summarizer.DefaultMinWords {
		t.Fatalf("unexpected summarizer defaults: %+v", cfg.Summarizer)
	}
	if cfg.Summarizer.Weights != summarizer.DefaultWeights() {
		t.Fatalf("expected default weights")
	}
	if cfg.History.Type != "memory" || cfg.History.Limit != 50 {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if len(cfg.Extract.OCRLanguages) != 2 || cfg.Extract.PageMarker != "--- صفحة %d ---" {
		t.Fatalf("unexpected extract defaults: %+v", cfg.Extract)
	}
	if cfg.Log.Format != "json" || cfg.Log.Output != "stderr" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "summarizer:\n  policy: short\n  weights:\n    keyword: 5\nhistory:\n  type: sqlite\n  dsn: /tmp/h.db\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy() != domain.PolicyShort {
		t.Fatalf("policy = %s", cfg.Policy())
	}
	w := cfg.Summarizer.Weights
	if w.Keyword != 5 || w.IdealLength != summarizer.DefaultWeights().IdealLength {
		t.Fatalf("weights not merged: %+v", w)
	}
	if cfg.History.Type != "sqlite" || cfg.History.DSN != "/tmp/h.db" || cfg.History.Limit != 50 {
		t.Fatalf("unexpected history: %+v", cfg.History)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCSUM_POLICY", "long")
	t.Setenv("DOCSUM_HISTORY_TYPE", "sqlite")
	t.Setenv("DOCSUM_HISTORY_DSN", "env.db")
	t.Setenv("DOCSUM_LOG_LEVEL", "debug")
	t.Setenv("DOCSUM_OCR_LANGUAGES", "fra+eng")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy() != domain.PolicyLong || cfg.History.Type != "sqlite" || cfg.History.DSN != "env.db" || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if len(cfg.Extract.OCRLanguages) != 2 || cfg.Extract.OCRLanguages[0] != "fra" {
		t.Fatalf("ocr languages = %v", cfg.Extract.OCRLanguages)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"policy":  "summarizer:\n  policy: tiny\n",
		"history": "history:\n  type: redis\n",
		"format":  "log:\n  format: xml\n",
		"yaml":    "summarizer: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Summarizer.Policy = "short"
	cfg.Extract.OCRLanguages = []string{"eng"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Policy() != domain.PolicyShort || len(got.Extract.OCRLanguages) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
