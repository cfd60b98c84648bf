package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame  int    `json:"frame"`
	Image  string `json:"image"`
	Thumb  string `json:"thumb,omitempty"`
	Drawn  int    `json:"drawn"`
	Culled int    `json:"culled"`
}

// Manifest describes a rendered sequence.
type Manifest struct {
	Scene  string          `json:"scene"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Format string          `json:"format"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes m to path, listing the successful frames of results
// with image paths relative to the manifest.
func WriteManifest(path string, m Manifest, results []Result) error {
	m.Frames = make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{
			Frame:  r.Frame,
			Image:  filepath.Base(r.Path),
			Drawn:  r.Drawn,
			Culled: r.Culled,
		}
		if r.Thumb != "" {
			e.Thumb = filepath.Base(r.Thumb)
		}
		m.Frames = append(m.Frames, e)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
