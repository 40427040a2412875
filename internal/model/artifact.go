package model

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"golang.org/x/sys/unix"
)

// Artifact is a persisted model bundle. The serving core only consumes the
// architecture tag, the two vocabulary tables and the optional filter chain;
// the parameter payload is opaque and handed to the resolved architecture
// untouched.
type Artifact struct {
	Arch     string          `json:"arch"`
	SrcVocab map[string]int  `json:"src_vocab"`
	TrgVocab map[string]int  `json:"trg_vocab"`
	Params   json.RawMessage `json:"params"`
	Filters  []string        `json:"filters,omitempty"`
}

// OpenArtifact reads and decodes a model bundle. The file is mapped
// read-only where mmap is available, with a plain read fallback; the
// mapping is released before returning since decoding copies out of it.
func OpenArtifact(path string) (*Artifact, error) {
	raw, unmap, err := readFileMapped(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
	}
	defer unmap()

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
	}
	if art.Arch == "" {
		return nil, fmt.Errorf("%w: %s: missing architecture tag", ErrModelLoad, path)
	}
	if len(art.SrcVocab) == 0 || len(art.TrgVocab) == 0 {
		return nil, fmt.Errorf("%w: %s: missing vocabulary tables", ErrModelLoad, path)
	}
	return &art, nil
}

func readFileMapped(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := int(stat.Size())
	if size == 0 {
		return nil, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// mmap unavailable for this file; fall back to a plain read.
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, nil, rerr
		}
		return raw, func() {}, nil
	}
	return data, func() { _ = unix.Munmap(data) }, nil
}
