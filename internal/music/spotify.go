// Package music fetches track recommendations for a mood from the Spotify Web API.
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	DefaultAPIURL   = "https://api.spotify.com/v1"
)

// Mood selects a set of recommendation seeds.
type Mood string

const (
	Happy     Mood = "happy"
	Calm      Mood = "calm"
	Energetic Mood = "energetic"
)

var moods = map[Mood]map[string]string{
	Happy:     {"seed_genres": "pop", "target_energy": "0.8", "target_valence": "0.9"},
	Calm:      {"seed_genres": "acoustic", "target_energy": "0.3", "target_valence": "0.5"},
	Energetic: {"seed_genres": "dance", "target_energy": "0.9", "target_tempo": "140"},
}

// Moods lists the known moods in display order.
func Moods() []Mood {
	return []Mood{Happy, Calm, Energetic}
}

// ParseMood is case-insensitive.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moods[m]; !ok {
		return "", fmt.Errorf("unknown mood %q (use happy, calm or energetic)", s)
	}
	return m, nil
}

// Params returns the recommendation query for m.
func (m Mood) Params() url.Values {
	v := url.Values{}
	for k, s := range moods[m] {
		v.Set(k, s)
	}
	return v
}

// Track is one recommended song. PreviewURL may be empty.
type Track struct {
	Title      string
	Artist     string
	PreviewURL string
	AlbumArt   string
}

func (t Track) String() string {
	return t.Title + " by " + t.Artist
}

// Config holds app credentials. Empty URLs use the public Spotify endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	Market       string
	TokenURL     string
	APIURL       string
}

// Client calls the Spotify API with an app token obtained by the client credentials flow.
// The token is fetched on first use and refreshed when it expires.
type Client struct {
	apiURL string
	market string
	hc     *http.Client
}

// New returns a Client. It fails only when credentials are missing.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify: client id and secret not set")
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	apiURL := strings.TrimSuffix(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{apiURL: apiURL, market: cfg.Market, hc: cc.Client(ctx)}, nil
}

type recommendationsResponse struct {
	Tracks []struct {
		Name       string `json:"name"`
		PreviewURL string `json:"preview_url"`
		Artists    []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
	} `json:"tracks"`
}

// Recommend returns up to limit tracks for mood. A limit of 0 uses the API default.
func (c *Client) Recommend(ctx context.Context, mood Mood, limit int) ([]Track, error) {
	q := mood.Params()
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if c.market != "" {
		q.Set("market", c.market)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/recommendations?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: %w", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: %s", resp.Status)
	}
	var out recommendationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("spotify: %w", err)
	}
	tracks := make([]Track, 0, len(out.Tracks))
	for _, t := range out.Tracks {
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}
		tr := Track{Title: t.Name, Artist: strings.Join(names, ", "), PreviewURL: t.PreviewURL}
		if len(t.Album.Images) > 0 {
			tr.AlbumArt = t.Album.Images[0].URL
		}
		tracks = append(tracks, tr)
	}
	return tracks, nil
}
