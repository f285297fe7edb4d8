// Package youtube downloads video metadata and caption transcripts from
// the public watch page.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dgallion1/mdsumm/internal/httputil"
	"github.com/dgallion1/mdsumm/internal/mdfile"
)

var (
	ErrInvalidURL  = errors.New("not a YouTube video URL")
	ErrNoCaptions  = errors.New("no usable captions")
	ErrNoPlayerDoc = errors.New("ytInitialPlayerResponse not found in watch page")
)

const (
	watchURL     = "https://www.youtube.com/watch"
	playerMarker = "ytInitialPlayerResponse"
)

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the 11 character video id from a watch, short, embed or
// youtu.be URL. A bare id is returned unchanged.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDRE.MatchString(raw) {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "shorts", "embed", "live", "v":
				id = parts[1]
			}
		}
	}
	if !videoIDRE.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return id, nil
}

// Video is a downloaded video description and transcript.
type Video struct {
	ID          string
	URL         string
	Title       string
	Author      string
	Description string
	Language    string
	Transcript  []string
	Fetched     time.Time
}

// Markdown renders the video as a document with a description block and
// one transcript line per caption.
func (v *Video) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	fmt.Fprintf(&b, "ID: %s  \n", v.ID)
	fmt.Fprintf(&b, "[Original](%s)\n\n", v.URL)
	fmt.Fprintf(&b, "## Description\n\n```text\n%s\n```\n\n", v.Description)
	b.WriteString("## Transcript\n\n")
	for _, line := range v.Transcript {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *Video) Meta() mdfile.Meta {
	return mdfile.Meta{
		Title:   v.Title,
		Source:  v.URL,
		Author:  v.Author,
		Site:    "YouTube",
		VideoID: v.ID,
		Fetched: v.Fetched,
	}
}

type playerResponse struct {
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// Client fetches videos. Langs lists preferred caption languages in order.
type Client struct {
	http     *httputil.Client
	log      *slog.Logger
	Langs    []string
	watchURL string
	now      func() time.Time
}

func NewClient(c *httputil.Client, log *slog.Logger, langs ...string) *Client {
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &Client{http: c, log: log, Langs: langs, watchURL: watchURL, now: time.Now}
}

// Fetch downloads the watch page for rawURL and the best caption track.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Video, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return nil, err
	}

	page, _, err := c.http.Get(ctx, c.watchURL+"?v="+id, "text/html")
	if err != nil {
		return nil, fmt.Errorf("watch page %s: %w", id, err)
	}
	player, err := parsePlayerResponse(page)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", id, err)
	}

	v := &Video{
		ID:          id,
		URL:         rawURL,
		Title:       strings.TrimSpace(player.VideoDetails.Title),
		Author:      player.VideoDetails.Author,
		Description: strings.TrimSpace(player.VideoDetails.ShortDescription),
	}
	if v.Title == "" {
		v.Title = id
	}

	if player.Captions == nil || len(player.Captions.Renderer.CaptionTracks) == 0 {
		if reason := player.PlayabilityStatus.Reason; reason != "" {
			return nil, fmt.Errorf("video %s: %w: %s", id, ErrNoCaptions, reason)
		}
		return nil, fmt.Errorf("video %s: %w", id, ErrNoCaptions)
	}
	track, ok := pickBestTrack(player.Captions.Renderer.CaptionTracks, c.Langs)
	if !ok {
		return nil, fmt.Errorf("video %s: %w: all tracks need a browser token", id, ErrNoCaptions)
	}
	c.log.Debug("caption track", "video", id, "lang", track.LanguageCode, "kind", track.Kind)

	data, _, err := c.http.Get(ctx, track.BaseURL, "")
	if err != nil {
		return nil, fmt.Errorf("captions %s: %w", id, err)
	}
	lines, err := parseTimedText(data)
	if err != nil {
		return nil, fmt.Errorf("captions %s: %w", id, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("video %s: %w: empty transcript", id, ErrNoCaptions)
	}

	v.Language = track.LanguageCode
	v.Transcript = lines
	v.Fetched = c.now().UTC()
	return v, nil
}

// parsePlayerResponse decodes the JSON object assigned to
// ytInitialPlayerResponse in the watch page.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(playerMarker))
	if idx < 0 {
		return nil, ErrNoPlayerDoc
	}
	rest := page[idx+len(playerMarker):]
	start := bytes.IndexByte(rest, '{')
	if start < 0 {
		return nil, ErrNoPlayerDoc
	}

	var resp playerResponse
	if err := json.NewDecoder(bytes.NewReader(rest[start:])).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", playerMarker, err)
	}
	return &resp, nil
}

// Tracks with &exp=xpe need a proof-of-origin token only browsers have.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then whatever is left.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// timedText covers both the legacy <transcript><text> layout and the
// format 3 <timedtext><body><p><s> layout.
type timedText struct {
	Lines []timedLine `xml:"text"`
	Paras []timedLine `xml:"body>p"`
}

type timedLine struct {
	Text     string `xml:",chardata"`
	Segments []struct {
		Text string `xml:",chardata"`
	} `xml:"s"`
}

func (l timedLine) String() string {
	if len(l.Segments) == 0 {
		return l.Text
	}
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func parseTimedText(data []byte) ([]string, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}
	raw := tt.Lines
	if len(raw) == 0 {
		raw = tt.Paras
	}

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		// Caption text is entity-escaped a second time inside the XML.
		text := strings.TrimSpace(html.UnescapeString(l.String()))
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}
