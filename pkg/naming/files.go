package naming

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var DefaultExtensions = []string{".wav"}

// HasExtension compares case-insensitively, with or without the leading dot.
func HasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}

// ListAudioFiles returns the sorted base names of the audio files directly inside dir.
func ListAudioFiles(fs afero.Fs, dir string, extensions []string) (result []string, err error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		err = errors.Wrapf(err, "naming: reading dir %s failed", dir)
		return
	}
	for _, info := range infos {
		if !info.Mode().IsRegular() || !HasExtension(info.Name(), extensions) {
			continue
		}
		result = append(result, info.Name())
	}
	sort.Strings(result)
	return
}
