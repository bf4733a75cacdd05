package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

type Config struct {
	CacheDir string `hcl:"cache_dir" env:"CACHE_DIR"`
	DBPath   string `hcl:"db_path" env:"DB_PATH"`
	LogPath  string `hcl:"log_path" env:"LOG_PATH"`
	LogLevel string `hcl:"log_level" env:"LOG_LEVEL" default:"info"`

	// Source is "algolia" or "firebase".
	Source         string        `hcl:"source" env:"SOURCE" default:"algolia"`
	AlgoliaURL     string        `hcl:"algolia_url" env:"ALGOLIA_URL" default:"https://hn.algolia.com/api/v1"`
	FirebaseURL    string        `hcl:"firebase_url" env:"FIREBASE_URL" default:"https://hacker-news.firebaseio.com/v0"`
	RequestTimeout time.Duration `hcl:"request_timeout" env:"REQUEST_TIMEOUT" default:"10s"`
	RequestsPerSec float64       `hcl:"requests_per_sec" env:"REQUESTS_PER_SEC" default:"20"`

	FrontPageSize   int           `hcl:"front_page_size" env:"FRONT_PAGE_SIZE" default:"30"`
	RefreshInterval time.Duration `hcl:"refresh_interval" env:"REFRESH_INTERVAL" default:"5m"`
	// DuplicatePolicy is "last" or "first".
	DuplicatePolicy string `hcl:"duplicate_policy" env:"DUPLICATE_POLICY" default:"last"`
	Persist         bool   `hcl:"persist" env:"PERSIST" default:"true"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	cacheDir := filepath.Join(userConfigDir(), "frontpage")
	return Config{
		CacheDir:        cacheDir,
		DBPath:          filepath.Join(cacheDir, "cache.db"),
		LogPath:         filepath.Join(cacheDir, "debug.log"),
		LogLevel:        "info",
		Source:          "algolia",
		AlgoliaURL:      "https://hn.algolia.com/api/v1",
		FirebaseURL:     "https://hacker-news.firebaseio.com/v0",
		RequestTimeout:  10 * time.Second,
		RequestsPerSec:  20,
		FrontPageSize:   30,
		RefreshInterval: 5 * time.Minute,
		DuplicatePolicy: "last",
		Persist:         true,
	}
}

// Load reads defaults, then the HCL files (explicit path first if given),
// then FRONTPAGE_* environment variables. Paths left empty are derived from
// CacheDir.
func Load(path string) (Config, error) {
	var cfg Config
	files := []string{
		filepath.Join(userConfigDir(), "frontpage", "config.hcl"),
		"./frontpage.hcl",
	}
	if path != "" {
		files = []string{path}
	}

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:          true,
		EnvPrefix:          "FRONTPAGE",
		AllowUnknownFields: true,
		FailOnFileNotFound: path != "",
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	def := Default()
	if cfg.CacheDir == "" {
		cfg.CacheDir = def.CacheDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.CacheDir, "cache.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(cfg.CacheDir, "debug.log")
	}
	return cfg, nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
