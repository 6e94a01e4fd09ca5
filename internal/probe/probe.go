// Package probe reads playback metadata from audio assets.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/mp3"
)

// Duration decodes the MP3 at path far enough to report its playing time.
func Duration(path string) (time.Duration, error) {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return 0, fmt.Errorf("probe %s: unsupported audio format", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	// The streamer owns f from here on.
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}
