package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"
)

// Lore is the champion summary published by Data Dragon.
type Lore struct {
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Blurb string   `json:"blurb"`
	Tags  []string `json:"tags"`
}

// LoreSource looks up champion lore by display name.
type LoreSource interface {
	Lookup(ctx context.Context, champion string) (*Lore, error)
}

const defaultDataDragonURL = "https://ddragon.leagueoflegends.com"

// DataDragon fetches champion lore from the Data Dragon CDN. The latest
// patch version is resolved once and reused.
type DataDragon struct {
	baseURL    string
	locale     string
	httpClient *http.Client

	mu      sync.Mutex
	version string
}

// DataDragonOption configures a DataDragon client.
type DataDragonOption func(*DataDragon)

// WithBaseURL points the client at another host (tests, mirrors).
func WithBaseURL(u string) DataDragonOption {
	return func(d *DataDragon) { d.baseURL = u }
}

// WithHTTPClient overrides the default 10s-timeout client.
func WithHTTPClient(c *http.Client) DataDragonOption {
	return func(d *DataDragon) { d.httpClient = c }
}

// WithLocale sets the data locale, en_US by default.
func WithLocale(locale string) DataDragonOption {
	return func(d *DataDragon) { d.locale = locale }
}

// NewDataDragon creates a lore client.
func NewDataDragon(opts ...DataDragonOption) *DataDragon {
	d := &DataDragon{
		baseURL:    defaultDataDragonURL,
		locale:     "en_US",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var nonLetters = regexp.MustCompile(`[^a-zA-Z]`)

// ChampionKey converts a display name to the Data Dragon file key, e.g.
// "Kai'Sa" → "KaiSa".
func ChampionKey(name string) string {
	return nonLetters.ReplaceAllString(name, "")
}

// Lookup returns lore for champion.
func (d *DataDragon) Lookup(ctx context.Context, champion string) (*Lore, error) {
	key := ChampionKey(champion)
	if key == "" {
		return nil, fmt.Errorf("lookup lore: empty champion name")
	}
	version, err := d.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion/%s.json", d.baseURL, version, d.locale, key)
	var body struct {
		Data map[string]Lore `json:"data"`
	}
	if err := d.getJSON(ctx, url, &body); err != nil {
		return nil, fmt.Errorf("fetch champion %s: %w", key, err)
	}
	lore, ok := body.Data[key]
	if !ok {
		return nil, fmt.Errorf("champion %s missing from response", key)
	}
	return &lore, nil
}

func (d *DataDragon) latestVersion(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.version != "" {
		return d.version, nil
	}

	var versions []string
	if err := d.getJSON(ctx, d.baseURL+"/api/versions.json", &versions); err != nil {
		return "", fmt.Errorf("fetch versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}
	d.version = versions[0]
	return d.version, nil
}

func (d *DataDragon) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
