package main

import (
	"strings"
	"testing"
)

func TestShowCommand(t *testing.T) {
	path := sampleFile(t, "sample.fits")
	gz := sampleFile(t, "sample.fits.gz")

	tests := []struct {
		name           string
		file           string
		header         int
		all            bool
		wantErr        bool
		wantLines      int
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "primary header",
			file:           path,
			wantLines:      36,
			wantContain:    []string{"SIMPLE  =                    T", "OBJECT  = 'M31     '", "HISTORY created by testutil"},
			wantNotContain: []string{"XTENSION"},
		},
		{
			name:        "extension from gzip",
			file:        gz,
			header:      1,
			wantLines:   36,
			wantContain: []string{"XTENSION= 'IMAGE   '", "HIERARCH ESO DET DIT"},
		},
		{
			name:        "all headers",
			file:        path,
			all:         true,
			wantLines:   72,
			wantContain: []string{"SIMPLE", "XTENSION"},
		},
		{
			name:    "header out of range",
			file:    path,
			header:  5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			showHeader = tt.header
			showAll = tt.all

			output, err := captureOutput(t, func() error {
				return runShow([]string{tt.file})
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runShow() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
			if tt.wantErr {
				return
			}
			if got := strings.Count(output, "\n"); got != tt.wantLines {
				t.Errorf("got %d lines, want %d", got, tt.wantLines)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestShowRaw(t *testing.T) {
	resetFlags()
	showRaw = true
	output, err := captureOutput(t, func() error {
		return runShow([]string{sampleFile(t, "sample.fits")})
	})
	if err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	if len(output) != 2880 {
		t.Errorf("raw output is %d bytes, want 2880", len(output))
	}
}
