package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/fitskit/internal/testutil"
)

// sampleFile writes the two-header sample stream to a temporary file.
func sampleFile(t *testing.T, name string) string {
	t.Helper()
	data := testutil.Sample()
	if strings.HasSuffix(name, ".gz") {
		data = testutil.Gzip(t, data)
	}
	return testutil.WriteFile(t, name, data)
}

// resetFlags restores the global and command flags to their defaults.
func resetFlags() {
	verbose, quiet, headerOnly = false, false, false
	showHeader, showAll, showRaw = 0, false, false
	getHeader, getAll, getCard = 0, false, false
	structCheck = false
	xmlFormat, xmlHeader, xmlAll, xmlCompact, xmlIndent = "vo", 0, false, false, 3
	tsvHeader, tsvAll, tsvDBCM, tsvKey, tsvParquet = 0, true, false, "", ""
	extractXML, extractJobs, extractOutDir, extractHeader, extractAll = "", 0, ".", 0, false
	mergeExt, mergeOut = 1, ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
