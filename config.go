package ragcontent

import "net/url"

// Config holds the recognized configuration options. Loading is performed
// by the koanf subpackage; the option set itself is part of the service
// contract.
type Config struct {
	// PingURL is the external indexing service endpoint notified about
	// page changes. Empty means the pingback feature is disabled; the
	// notifier treats this as a precondition and never evaluates
	// relevance without it.
	PingURL string `koanf:"ping_url"`

	// Namespaces is the set of namespace IDs eligible for indexing.
	Namespaces []int `koanf:"namespaces"`

	// TitleAllowlist contains exact full-title strings that are always
	// relevant, regardless of namespace.
	TitleAllowlist []string `koanf:"title_allowlist"`

	// ArticleTypeBlocklist contains article-type classification codes
	// excluded from indexing.
	ArticleTypeBlocklist []string `koanf:"article_type_blocklist"`

	// ContentLanguage is the wiki's content language code, sourced from
	// the wiki configuration rather than set by this service.
	ContentLanguage string `koanf:"content_language"`

	// Server is the wiki's canonical base URL, used to compose the
	// callback URI sent with pingbacks.
	Server string `koanf:"server"`

	// RestPath is the mount path of the REST API under Server.
	RestPath string `koanf:"rest_path"`

	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string `koanf:"listen_addr"`

	// DatabasePath is the SQLite database backing the page store.
	// Use ":memory:" for an in-memory database.
	DatabasePath string `koanf:"database_path"`
}

// DefaultConfig returns a Config populated with defaults. The main
// namespace is eligible by default; everything else is opt-in.
func DefaultConfig() *Config {
	return &Config{
		Namespaces:      []int{0},
		ContentLanguage: "en",
		RestPath:        "/api",
		ListenAddr:      ":8080",
		DatabasePath:    "ragcontent.db",
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.ContentLanguage == "" {
		return Errorf(EINVALID, "content language required")
	}
	if c.PingURL != "" {
		u, err := url.Parse(c.PingURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Errorf(EINVALID, "ping URL %q is not an absolute URL", c.PingURL)
		}
	}
	return nil
}

// PingConfigured reports whether an external indexing service is configured
// to receive change notifications.
func (c *Config) PingConfigured() bool {
	return c.PingURL != ""
}
