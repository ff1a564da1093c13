package games

import (
	"regexp"
	"strings"
)

// MediaType classifies a shared media link.
type MediaType string

const (
	MediaYouTube MediaType = "youtube"
	MediaSpotify MediaType = "spotify"
	MediaDirect  MediaType = "direct"
	MediaUnknown MediaType = "unknown"
)

// Media is a classified media link.
type Media struct {
	URL      string    `json:"url"`
	Type     MediaType `json:"type"`
	ID       string    `json:"id,omitempty"`
	EmbedURL string    `json:"embedUrl,omitempty"`
}

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]+)`)
	spotifyRe = regexp.MustCompile(`spotify\.com/(track|album|playlist)/([a-zA-Z0-9]+)`)

	directExts = []string{".mp3", ".mp4", ".wav", ".webm", ".ogg", ".m4a"}
)

// DetectMedia works out how a link can be embedded.
func DetectMedia(url string) Media {
	m := Media{URL: url, Type: MediaUnknown}

	if match := youtubeRe.FindStringSubmatch(url); match != nil {
		m.Type = MediaYouTube
		m.ID = match[1]
		m.EmbedURL = "https://www.youtube.com/embed/" + match[1] + "?autoplay=1"
		return m
	}

	if match := spotifyRe.FindStringSubmatch(url); match != nil {
		m.Type = MediaSpotify
		m.ID = match[2]
		m.EmbedURL = "https://open.spotify.com/embed/" + match[1] + "/" + match[2]
		return m
	}

	for _, ext := range directExts {
		if strings.Contains(url, ext) {
			m.Type = MediaDirect
			m.EmbedURL = url
			return m
		}
	}

	return m
}

// WatchTogetherURL returns a Watch2Gether link that opens a synced room
// for a YouTube video, or "" for other media.
func WatchTogetherURL(m Media) string {
	if m.Type != MediaYouTube {
		return ""
	}
	return "https://www.watch2gether.com/?youtubeId=" + m.ID + "&autoplay=1"
}
