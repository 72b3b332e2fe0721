package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDocumentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")

	if err := writeDocument([]byte(`{"architecture":"hexagonal"}`), path); err != nil {
		t.Fatalf("writeDocument: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"architecture":"hexagonal"}` {
		t.Errorf("content = %q", data)
	}
}

func TestOpenOutputStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	// Stdout must survive Close
	if err := out.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
