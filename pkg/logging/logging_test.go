package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevels(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, false, false)
	L().Debug().Msg("hidden")
	L().Info().Msg("shown")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Fatalf("debug message logged at info level: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"message":"shown"`)) {
		t.Fatalf("expected info message, got: %s", buf.String())
	}

	buf.Reset()
	InitTo(&buf, true, true)
	L().Debug().Msg("console debug")
	if !bytes.Contains(buf.Bytes(), []byte("console debug")) {
		t.Fatalf("expected debug message, got: %s", buf.String())
	}
	Init(false, false)
}

func TestWithFile(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(false, false)

	log := WithFile("a.fits")
	log.Info().Msg("opened")
	if !bytes.Contains(buf.Bytes(), []byte(`"file":"a.fits"`)) {
		t.Fatalf("expected file field in output, got: %s", buf.String())
	}
}
