package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if c.Source.Type != SourceSynthetic {
		t.Errorf("Source.Type = %q", c.Source.Type)
	}
	if c.Market.UTCOffsetHours != -6 {
		t.Errorf("UTCOffsetHours = %d", c.Market.UTCOffsetHours)
	}
}

func TestLoad_FileResolvesRelativeSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dam.json", `{"data":[]}`)
	path := writeFile(t, dir, "config.yaml", `
server:
  port: "9090"
market:
  default_node: HB_NORTH
source:
  type: file
  files: [dam.json]
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Port != "9090" || c.Market.DefaultNode != "HB_NORTH" {
		t.Errorf("unexpected config: %+v", c)
	}
	if want := filepath.Join(dir, "dam.json"); c.Source.Files[0] != want {
		t.Errorf("Files[0] = %q, want %q", c.Source.Files[0], want)
	}
	// Fields absent from the file keep their defaults.
	if c.Metrics.Namespace != "lmp" {
		t.Errorf("Metrics.Namespace = %q", c.Metrics.Namespace)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "7070")
	t.Setenv("LMP_UTC_OFFSET_HOURS", "0")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "7070" {
		t.Errorf("Port = %q", c.Server.Port)
	}
	if c.Market.UTCOffsetHours != 0 {
		t.Errorf("UTCOffsetHours = %d, want 0", c.Market.UTCOffsetHours)
	}
	if len(c.Server.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", c.Server.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Source.Type = SourceFile
	if err := c.Validate(); err == nil {
		t.Error("file source without files should fail")
	}

	c = Default()
	c.Source.Type = "gridstatus"
	if err := c.Validate(); err == nil {
		t.Error("unknown source type should fail")
	}

	c = Default()
	c.Source.Type = ""
	if err := c.Validate(); err != nil {
		t.Errorf("empty source type means synthetic, got %v", err)
	}

	c = Default()
	c.Market.UTCOffsetHours = 20
	if err := c.Validate(); err == nil {
		t.Error("out-of-range offset should fail")
	}
}
