package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source is one configured news source. Declaration order matters: fetch
// results are merged in this order before dedup so first-occurrence-wins
// is reproducible.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Type string `yaml:"type"` // "rss" (default) or "scrape"

	// CSS selectors, only used by scrape-type sources
	Selectors struct {
		Item        string `yaml:"item"`
		Title       string `yaml:"title"`
		Link        string `yaml:"link"`
		Description string `yaml:"description"`
		Published   string `yaml:"published"`
	} `yaml:"selectors"`
}

type Config struct {
	Sources  []Source `yaml:"sources"`
	Keywords []string `yaml:"keywords"`

	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	Scoring struct {
		TitleWeight       float64 `yaml:"title_weight"`
		DescriptionWeight float64 `yaml:"description_weight"`
		BullThreshold     float64 `yaml:"bull_threshold"`
		BearThreshold     float64 `yaml:"bear_threshold"`
	} `yaml:"scoring"`

	Scorer struct {
		Provider  string `yaml:"provider"` // "HF" or "LEXICON"
		Model     string `yaml:"model"`
		Endpoint  string `yaml:"endpoint"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"scorer"`

	Snapshot struct {
		Dir      string `yaml:"dir"`
		Timezone string `yaml:"timezone"`
	} `yaml:"snapshot"`

	Notify struct {
		Provider string `yaml:"provider"` // "TELEGRAM" or "NOOP"
	} `yaml:"notify"`

	Price struct {
		AsiaProxies []string `yaml:"asia_proxies"`
		USProxies   []string `yaml:"us_proxies"`
		AsiaWeight  float64  `yaml:"asia_weight"`
		USWeight    float64  `yaml:"us_weight"`
		Threshold   float64  `yaml:"threshold"`
	} `yaml:"price"`
}

// defaultSources are the Oslo Børs feeds of the production bot.
func defaultSources() []Source {
	return []Source{
		{Name: "e24", URL: "https://e24.no/rss2/?seksjon=boers-og-finans", Type: "rss"},
		{Name: "dn", URL: "https://services.dn.no/api/feed/rss/?categories=børs&topics=", Type: "rss"},
		{Name: "nettavisen", URL: "https://www.nettavisen.no/service/rich-rss", Type: "rss"},
	}
}

// defaultKeywords select items relevant to the Oslo main index: exchange
// terms, market moves, oil and the macro events that usually hit Oslo Børs.
func defaultKeywords() []string {
	return []string{
		"oslo børs", "oslobørs", "oslo-børs",
		"børsen", "børs",
		"hovedindeksen", "hovedindeks",
		"børsindeksen", "aksjeindeksen",
		"obx", "omx oslo 20", "omx oslo",

		"børsfall", "børsoppgang",
		"kursfall", "kursras", "børskrasj", "børskollaps",
		"børsrally", "børsuro",

		"oljeprisen", "oljepris",
		"brent", "nordsjøolje", "råolje",

		"styringsrenten", "renteheving", "rentekutt",
	}
}

// FetchTimeout is the per-source HTTP deadline.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("sources cannot be empty")
	}
	for _, src := range c.Sources {
		if src.Name == "" {
			return errors.New("source name cannot be empty")
		}
		if !strings.HasPrefix(src.URL, "http://") && !strings.HasPrefix(src.URL, "https://") {
			return fmt.Errorf("source '%s': url must start with http:// or https://", src.Name)
		}
		if src.Type != "rss" && src.Type != "scrape" {
			return fmt.Errorf("source '%s': type must be 'rss' or 'scrape', got '%s'", src.Name, src.Type)
		}
		if src.Type == "scrape" && src.Selectors.Item == "" {
			return fmt.Errorf("source '%s': scrape sources need selectors.item", src.Name)
		}
	}
	if len(c.Keywords) == 0 {
		return errors.New("keywords cannot be empty")
	}
	if c.Scoring.TitleWeight < 0 || c.Scoring.DescriptionWeight < 0 {
		return errors.New("scoring weights cannot be negative")
	}
	if c.Scoring.TitleWeight == 0 && c.Scoring.DescriptionWeight == 0 {
		return errors.New("at least one scoring weight must be positive")
	}
	if c.Scoring.BullThreshold <= 0 {
		return fmt.Errorf("scoring.bull_threshold must be positive, got %.3f", c.Scoring.BullThreshold)
	}
	if c.Scoring.BearThreshold >= 0 {
		return fmt.Errorf("scoring.bear_threshold must be negative, got %.3f", c.Scoring.BearThreshold)
	}
	if c.Scorer.Provider != "HF" && c.Scorer.Provider != "LEXICON" {
		return fmt.Errorf("scorer.provider must be 'HF' or 'LEXICON', got '%s'", c.Scorer.Provider)
	}
	return nil
}

// LoadConfig reads a yaml config file, fills defaults and validates.
// A missing file yields the full default configuration.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if len(c.Sources) == 0 {
		c.Sources = defaultSources()
	}
	for i := range c.Sources {
		if c.Sources[i].Type == "" {
			c.Sources[i].Type = "rss"
		}
	}
	if len(c.Keywords) == 0 {
		c.Keywords = defaultKeywords()
	}
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = 10
	}
	if c.Scoring.TitleWeight == 0 && c.Scoring.DescriptionWeight == 0 {
		c.Scoring.TitleWeight = 2.0
		c.Scoring.DescriptionWeight = 1.0
	}
	if c.Scoring.BullThreshold == 0 {
		c.Scoring.BullThreshold = 0.2
	}
	if c.Scoring.BearThreshold == 0 {
		c.Scoring.BearThreshold = -0.2
	}
	if c.Scorer.Provider == "" {
		c.Scorer.Provider = "LEXICON"
	}
	if c.Scorer.Model == "" {
		c.Scorer.Model = "Kushtrim/norbert3-large-norsk-sentiment-sst2"
	}
	if c.Scorer.APIKeyEnv == "" {
		c.Scorer.APIKeyEnv = "HF_API_TOKEN"
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = "data"
	}
	if c.Snapshot.Timezone == "" {
		c.Snapshot.Timezone = "Europe/Oslo"
	}
	if c.Notify.Provider == "" {
		c.Notify.Provider = "TELEGRAM"
	}
	if len(c.Price.AsiaProxies) == 0 {
		c.Price.AsiaProxies = []string{"EWJ"}
	}
	if len(c.Price.USProxies) == 0 {
		c.Price.USProxies = []string{"SPY"}
	}
	if c.Price.AsiaWeight == 0 && c.Price.USWeight == 0 {
		c.Price.AsiaWeight = 0.5
		c.Price.USWeight = 0.5
	}
	if c.Price.Threshold == 0 {
		c.Price.Threshold = 0.003
	}
}
