package illustra

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/illustra/policy"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.pdf")

	if _, _, err := Open(path).Extract(); err == nil {
		t.Error("Extract() error = nil, want open failure")
	}
	if _, _, err := Open(path).RawTables(); err == nil {
		t.Error("RawTables() error = nil, want open failure")
	}
}

func TestOpenEmptyFilename(t *testing.T) {
	if _, _, err := Open("").Extract(); err == nil {
		t.Error("Extract() error = nil, want missing-filename failure")
	}
}

func TestCatalogFileMissing(t *testing.T) {
	// A catalog load failure surfaces at the terminal operation, before the
	// document is touched.
	_, _, err := Open("whatever.pdf").
		CatalogFile(filepath.Join(t.TempDir(), "absent.yaml")).
		Extract()
	if err == nil {
		t.Fatal("Extract() error = nil, want catalog load failure")
	}
	if !strings.Contains(err.Error(), "catalog") {
		t.Errorf("error = %v, want catalog load failure", err)
	}
}

func TestConfigurationImmutability(t *testing.T) {
	base := Open("doc.pdf")
	derived := base.InfoRowLimit(7)

	if base.options.infoRowLimit != 3 {
		t.Errorf("base infoRowLimit = %d, want untouched default 3", base.options.infoRowLimit)
	}
	if derived.options.infoRowLimit != 7 {
		t.Errorf("derived infoRowLimit = %d, want 7", derived.options.infoRowLimit)
	}
	if base == derived {
		t.Error("configuration method returned the same instance")
	}
}

func TestCatalogOption(t *testing.T) {
	custom := policy.DefaultCatalog()
	custom.Insurer = "Example Life"

	e := Open("doc.pdf").Catalog(custom)
	if e.options.catalog.Insurer != "Example Life" {
		t.Errorf("catalog insurer = %q, want %q", e.options.catalog.Insurer, "Example Life")
	}
	if def := Open("doc.pdf"); def.options.catalog.Insurer != "AIA" {
		t.Errorf("default catalog insurer = %q, want AIA", def.options.catalog.Insurer)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(Open(filepath.Join(t.TempDir(), "absent.pdf")).Extract())
}

func TestCloseIdempotent(t *testing.T) {
	e := Open("doc.pdf")
	if err := e.Close(); err != nil {
		t.Errorf("Close() before open = %v, want nil", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}
