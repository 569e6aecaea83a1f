// Package tags writes ID3v2 metadata onto exported MP3 tracks.
//
// Tagging runs only after a track's audio has been exported successfully,
// and a tagging failure never discards the audio: callers record a degraded
// success instead.
package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"

	"tracksplit/internal/services"
)

// Track carries the metadata applied to one exported file.
type Track struct {
	Title  string
	Index  int
	Total  int
	Album  string
	Artist string
}

// Apply writes title, track number, album, and (when known) artist frames to
// the file at path. Existing frames with the same IDs are replaced.
func Apply(path string, track Track) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return services.Wrap(services.ErrMetadata, "tags", "open", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if title := strings.TrimSpace(track.Title); title != "" {
		tag.SetTitle(title)
	}
	if album := strings.TrimSpace(track.Album); album != "" {
		tag.SetAlbum(album)
	}
	if artist := strings.TrimSpace(track.Artist); artist != "" {
		tag.SetArtist(artist)
	}
	if track.Index > 0 {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), trackNumber(track))
	}

	if err := tag.Save(); err != nil {
		return services.Wrap(services.ErrMetadata, "tags", "save", path, err)
	}
	return nil
}

func trackNumber(track Track) string {
	if track.Total > 0 {
		return fmt.Sprintf("%d/%d", track.Index, track.Total)
	}
	return fmt.Sprintf("%d", track.Index)
}
