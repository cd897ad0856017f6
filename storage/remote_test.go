package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectScheme(t *testing.T) {
	tests := []struct {
		path string
		want urlScheme
	}{
		{"s3://bucket/key.json", schemeS3},
		{"S3://bucket/key.json", schemeS3},
		{"https://example.com/t.json", schemeHTTPS},
		{"http://example.com/t.json", schemeHTTP},
		{"file:///tmp/t.json", schemeFile},
		{"/tmp/t.json", schemeLocal},
		{"t.json", schemeLocal},
	}

	for _, tt := range tests {
		if got := detectScheme(tt.path); got != tt.want {
			t.Errorf("detectScheme(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://my-bucket/exports/users.json")
	if err != nil {
		t.Fatalf("parseS3URL: %v", err)
	}
	if bucket != "my-bucket" || key != "exports/users.json" {
		t.Errorf("bucket, key = %q, %q", bucket, key)
	}

	if _, _, err := parseS3URL("s3://bucket-only"); err == nil {
		t.Error("URL without key should fail")
	}
}

func TestOpenReaderAndWriterLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	w, err := OpenWriter(path, nil)
	if err != nil {
		t.Fatalf("OpenWriter: %v", err)
	}
	if _, err := w.Write([]byte("payload")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := OpenReader("file://"+path, nil)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}
}

func TestOpenWriterRejectsHTTP(t *testing.T) {
	if _, err := OpenWriter("https://example.com/users.json", nil); err == nil {
		t.Error("HTTP writer should be rejected")
	}
}

func TestOpenReaderMissingLocalFile(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "absent.json"), nil)
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v", err)
	}
}
