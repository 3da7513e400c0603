package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want Kind
	}{
		{"cat.jpg", Image},
		{"cat.PNG", Image},
		{"clip.mp4", Video},
		{"clip.WebM", Video},
		{"clip.mov", Video},
		{"sound.ogg", Video},
		{"song.mp3", Audio},
		{"song.flac", Audio},
		{"noext", Image},
		{"dir.v2/file", Image},
	}
	for _, c := range cases {
		if got := Classify(c.name); got != c.want {
			t.Errorf("Classify(%q): expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestVideoType_Default(t *testing.T) {
	if got := VideoType("clip.mov"); got != "video/quicktime" {
		t.Errorf("expected video/quicktime, got %q", got)
	}
	if got := VideoType("clip.xyz"); got != "video/mp4" {
		t.Errorf("expected default video/mp4, got %q", got)
	}
}

func TestAudioType_Default(t *testing.T) {
	if got := AudioType("a.wav"); got != "audio/wav" {
		t.Errorf("expected audio/wav, got %q", got)
	}
	if got := AudioType("a.ogg"); got != "audio/mpeg" {
		t.Errorf("expected default audio/mpeg, got %q", got)
	}
}

func TestAlt(t *testing.T) {
	cases := map[string]string{
		"cat.jpg":               "cat",
		"pets/sleepy_cat.jpg":   "sleepy cat",
		"a_b_c":                 "a b c",
		"archive.tar.gz":        "archive.tar",
		`old\scans\my_scan.png`: "my scan",
	}
	for in, want := range cases {
		if got := Alt(in); got != want {
			t.Errorf("Alt(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestDirProber_FirstExistingExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "clips"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"clips/sunset.png", "clips/sunset.gif"} {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	p := NewDirProber(dir)
	got, ok := p.ProbeSiblingImage("clips/sunset")
	if !ok {
		t.Fatal("expected a sibling image")
	}
	if got != "clips/sunset.png" {
		t.Errorf("expected clips/sunset.png, got %q", got)
	}

	if _, ok := p.ProbeSiblingImage("clips/missing"); ok {
		t.Error("expected no sibling image for missing base name")
	}
}
