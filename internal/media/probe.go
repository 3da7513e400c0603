package media

import (
	"os"
	"path/filepath"
)

// SiblingImageProber finds a still image sharing a base name with a video.
// baseName is a media-relative path without extension ("clips/sunset").
type SiblingImageProber interface {
	ProbeSiblingImage(baseName string) (string, bool)
}

// DirProber probes for sibling images under a media directory on disk.
type DirProber struct {
	Dir string
}

func NewDirProber(dir string) *DirProber {
	return &DirProber{Dir: dir}
}

// ProbeSiblingImage returns the media-relative filename of the first existing
// image in ImageExtensions order.
func (p *DirProber) ProbeSiblingImage(baseName string) (string, bool) {
	for _, e := range ImageExtensions {
		name := baseName + e
		info, err := os.Stat(filepath.Join(p.Dir, filepath.FromSlash(name)))
		if err == nil && !info.IsDir() {
			return name, true
		}
	}
	return "", false
}

// NoProber never finds anything.
type NoProber struct{}

func (NoProber) ProbeSiblingImage(string) (string, bool) { return "", false }
