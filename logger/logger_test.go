package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevel(t *testing.T) {
	tests := []struct {
		env  string
		want logrus.Level
	}{
		{env: "debug", want: logrus.DebugLevel},
		{env: "WARN", want: logrus.WarnLevel},
		{env: "nonsense", want: logrus.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.env)
			Init()
			if Log.GetLevel() != tc.want {
				t.Fatalf("level = %s, want %s", Log.GetLevel(), tc.want)
			}
		})
	}
}

func TestWithTagJSON(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	Init()

	var buf bytes.Buffer
	Log.SetOutput(&buf)
	WithTag("maps").Info("loaded")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["component"] != "maps" || line["msg"] != "loaded" {
		t.Fatalf("unexpected entry: %v", line)
	}
}
