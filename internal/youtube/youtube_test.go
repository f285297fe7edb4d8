package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/mdsumm/internal/httputil"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://vimeo.com/123456", "", true},
		{"https://www.youtube.com/watch?v=short", "", true},
		{"https://www.youtube.com/channel/UCxyz", "", true},
		{"not a url", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := VideoID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickBestTrack(t *testing.T) {
	manualDE := captionTrack{BaseURL: "u1", LanguageCode: "de"}
	asrEN := captionTrack{BaseURL: "u2", LanguageCode: "en", Kind: "asr"}
	manualEN := captionTrack{BaseURL: "u3", LanguageCode: "en"}
	manualGB := captionTrack{BaseURL: "u4", LanguageCode: "en-GB"}
	locked := captionTrack{BaseURL: "u5&exp=xpe", LanguageCode: "en"}

	tests := []struct {
		name   string
		tracks []captionTrack
		langs  []string
		want   captionTrack
		ok     bool
	}{
		{"manual preferred", []captionTrack{asrEN, manualEN}, []string{"en"}, manualEN, true},
		{"asr when no manual", []captionTrack{manualDE, asrEN}, []string{"en"}, asrEN, true},
		{"language order", []captionTrack{manualEN, manualDE}, []string{"de", "en"}, manualDE, true},
		{"any english", []captionTrack{manualDE, manualGB}, []string{"fr"}, manualGB, true},
		{"first usable", []captionTrack{manualDE}, []string{"fr"}, manualDE, true},
		{"skips token tracks", []captionTrack{locked, asrEN}, []string{"en"}, asrEN, true},
		{"only token tracks", []captionTrack{locked}, []string{"en"}, captionTrack{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, tt.langs)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimedText(t *testing.T) {
	legacy := `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="2.1">Never gonna give you up</text>
<text start="2.6" dur="1.9">it&amp;#39;s   a
 line</text>
<text start="4.5" dur="1">  </text>
</transcript>`
	lines, err := parseTimedText([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, []string{"Never gonna give you up", "it's a line"}, lines)

	format3 := `<timedtext format="3"><body>
<p t="0" d="1000"><s>Hello</s><s> there</s></p>
<p t="1000" d="1000">plain &amp;amp; simple</p>
</body></timedtext>`
	lines, err = parseTimedText([]byte(format3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello there", "plain & simple"}, lines)

	_, err = parseTimedText([]byte("<transcript><text>"))
	assert.Error(t, err)
}

func TestParsePlayerResponse(t *testing.T) {
	page := []byte(`<script>var ytInitialPlayerResponse = {"videoDetails":{"title":"A {braced} title"}};var meta = {};</script>`)
	resp, err := parsePlayerResponse(page)
	require.NoError(t, err)
	assert.Equal(t, "A {braced} title", resp.VideoDetails.Title)

	_, err = parsePlayerResponse([]byte("<html></html>"))
	assert.ErrorIs(t, err, ErrNoPlayerDoc)
}

func newTestClient(t *testing.T, handler func(base string) http.Handler) *Client {
	t.Helper()
	var base string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(base).ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	base = srv.URL

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hc := httputil.New(5*time.Second, "", log)
	hc.InitialInterval = time.Millisecond
	c := NewClient(hc, log)
	c.watchURL = srv.URL + "/watch"
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

const watchPage = `<html><body><script>var ytInitialPlayerResponse = {
"playabilityStatus":{"status":"OK"},
"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Test Video","author":"Tester","shortDescription":"Line one\nLine two"},
"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
{"baseUrl":"%[1]s/timedtext?lang=en&kind=asr","languageCode":"en","kind":"asr"},
{"baseUrl":"%[1]s/timedtext?lang=en","languageCode":"en"}
]}}};</script></body></html>`

func TestFetch(t *testing.T) {
	c := newTestClient(t, func(base string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
			fmt.Fprintf(w, watchPage, base)
		})
		mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("kind") == "asr" {
				fmt.Fprint(w, `<transcript><text>auto</text></transcript>`)
				return
			}
			fmt.Fprint(w, `<transcript><text>First line</text><text>Second line</text></transcript>`)
		})
		return mux
	})

	url := "https://youtu.be/dQw4w9WgXcQ"
	v, err := c.Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "Test Video", v.Title)
	assert.Equal(t, "Tester", v.Author)
	assert.Equal(t, "en", v.Language)
	assert.Equal(t, []string{"First line", "Second line"}, v.Transcript)

	want := "# Test Video\n\n" +
		"ID: dQw4w9WgXcQ  \n" +
		"[Original](https://youtu.be/dQw4w9WgXcQ)\n\n" +
		"## Description\n\n```text\nLine one\nLine two\n```\n\n" +
		"## Transcript\n\n" +
		"First line\nSecond line\n"
	assert.Equal(t, want, v.Markdown())

	meta := v.Meta()
	assert.Equal(t, "dQw4w9WgXcQ", meta.VideoID)
	assert.Equal(t, url, meta.Source)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), meta.Fetched)
}

func TestFetch_NoCaptions(t *testing.T) {
	c := newTestClient(t, func(string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<script>ytInitialPlayerResponse = {"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in"},"videoDetails":{"title":"x"}};</script>`)
		})
	})

	_, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCaptions))
	assert.Contains(t, err.Error(), "Sign in")
}

func TestFetch_WatchPageError(t *testing.T) {
	c := newTestClient(t, func(string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	})

	_, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httputil.StatusCode(err))
}
