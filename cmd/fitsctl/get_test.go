package main

import (
	"testing"
)

func TestGetCommand(t *testing.T) {
	path := sampleFile(t, "sample.fits")

	tests := []struct {
		name        string
		args        []string
		header      int
		all         bool
		card        bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "primary value",
			args:        []string{"OBJECT", path},
			wantContain: []string{path + "\t  0\tOBJECT\tM31\n"},
		},
		{
			name:        "all headers",
			args:        []string{"EXTNAME", path},
			all:         true,
			wantContain: []string{"\t  0\tEXTNAME\t*not found*", "\t  1\tEXTNAME\tCHIP1"},
		},
		{
			name:        "hierarch keyword",
			args:        []string{"HIERARCH ESO TEL AIRM", path},
			header:      1,
			wantContain: []string{"HIERARCH ESO TEL AIRM\t1.12"},
		},
		{
			name:        "original card",
			args:        []string{"OBJECT", path},
			card:        true,
			wantContain: []string{"OBJECT  = 'M31     '           / target"},
		},
		{
			name:    "missing file",
			args:    []string{"OBJECT", path + ".missing"},
			wantErr: true,
		},
		{
			name:    "card from all headers",
			args:    []string{"OBJECT", path},
			all:     true,
			card:    true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			getHeader = tt.header
			getAll = tt.all
			getCard = tt.card

			output, err := captureOutput(t, func() error {
				return runGet(tt.args)
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runGet() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}
