package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestGoldenRoundTrip(t *testing.T) {
	t.Setenv("UPDATE_GOLDENS", "1")
	path := filepath.Join(t.TempDir(), "nested", "value.json")

	WriteGolden(t, path, map[string]string{"level": "expert"})

	var got map[string]string
	MustLoadGoldenJSON(t, path, &got)
	if diff := CompareGolden(map[string]string{"level": "expert"}, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteMaybeGoldenSkipsByDefault(t *testing.T) {
	t.Setenv("UPDATE_GOLDENS", "")
	path := filepath.Join(t.TempDir(), "skip.txt")
	if WriteMaybeGolden(t, path, []byte("x")) {
		t.Fatalf("should not write without UPDATE_GOLDENS")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("golden should not exist, stat err %v", err)
	}
}

func TestCaptureTemplateOutput(t *testing.T) {
	ret, written := CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "card")
		return "card", err
	})
	if ret != written {
		t.Fatalf("expected matching output, got %q and %q", ret, written)
	}
}
