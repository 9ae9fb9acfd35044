package qpcr

import (
	"strings"
	"testing"
)

func TestDetermineDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{
			name:  "comma",
			input: "Gene,Group,Ct\nActb,Ctrl,15.1\nActb,Trt,15.2\nMyc,Ctrl,22.4\n",
			want:  ',',
		},
		{
			name:  "tab",
			input: "Gene\tGroup\tCt\nActb\tCtrl\t15.1\nActb\tTrt\t15.2\nMyc\tCtrl\t22.4\n",
			want:  '\t',
		},
		{
			name:  "semicolon",
			input: "Gene;Group;Ct\nActb;Ctrl;15\nActb;Trt;15\nMyc;Ctrl;22\n",
			want:  ';',
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DetermineDelimiter(strings.NewReader(test.input)); got != test.want {
				t.Errorf("DetermineDelimiter = %q, want %q", got, test.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	if got := ExpandHome("/tmp/table.csv"); got != "/tmp/table.csv" {
		t.Errorf("absolute paths should pass through unchanged, got %q", got)
	}

	got := ExpandHome("~/table.csv")
	if strings.HasPrefix(got, "~") {
		t.Errorf("~ was not expanded: %q", got)
	}
	if !strings.HasSuffix(got, "/table.csv") {
		t.Errorf("expansion should keep the trailing path: %q", got)
	}
}

func TestNeedsGoogleStorageClient(t *testing.T) {
	if NeedsGoogleStorageClient("/tmp/a.csv", "result.csv") {
		t.Error("local paths should not require a storage client")
	}

	if !NeedsGoogleStorageClient("/tmp/a.csv", "gs://bucket/table.csv") {
		t.Error("gs:// paths require a storage client")
	}

	if NeedsGoogleStorageClient() {
		t.Error("no paths, no client")
	}
}
