package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bookmarkd/oauth2/models"
	"github.com/bookmarkd/oauth2/store"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env    string        `koanf:"env"`
	Server ServerConfig  `koanf:"server"`
	Token  TokenSettings `koanf:"token"`
	JWT    JWTSettings   `koanf:"jwt"`

	DefaultScopes []string       `koanf:"default_scopes"`
	Clients       []ClientConfig `koanf:"clients"`
	Users         []UserConfig   `koanf:"users"`
}

type ServerConfig struct {
	Addr  string `koanf:"addr"`
	Realm string `koanf:"realm"`
}

type TokenSettings struct {
	Type             string        `koanf:"type"`
	AccessTTL        time.Duration `koanf:"access_ttl"`
	RefreshTTL       time.Duration `koanf:"refresh_ttl"`
	CodeTTL          time.Duration `koanf:"code_ttl"`
	RotateRefresh    bool          `koanf:"rotate_refresh"`
	RemoveOldRefresh bool          `koanf:"remove_old_refresh"`
	RemoveOldAccess  bool          `koanf:"remove_old_access"`
	// File is the buntdb path; empty keeps tokens in memory.
	File string `koanf:"file"`
}

type JWTSettings struct {
	Enabled bool   `koanf:"enabled"`
	KeyID   string `koanf:"key_id"`
	Key     string `koanf:"key"`
	Method  string `koanf:"method"`
}

type ClientConfig struct {
	ID          string   `koanf:"id"`
	Secret      string   `koanf:"secret"`
	RedirectURI string   `koanf:"redirect_uri"`
	Scopes      []string `koanf:"scopes"`
}

type UserConfig struct {
	ID       string `koanf:"id"`
	Password string `koanf:"password"`
	// PasswordHash takes precedence over Password when set.
	PasswordHash string `koanf:"password_hash"`
}

var (
	cfgOnce sync.Once
	cfgInst *AppConfig
)

// GetConfig loads and returns the singleton AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional), APP_ENV defaults to "local"
// 3) Environment variables with prefix AUTH_ mapped using __ as nested separator, e.g. AUTH_SERVER__ADDR
func GetConfig() *AppConfig {
	cfgOnce.Do(func() {
		k := koanf.New(".")
		// Config directory (CONFIG_DIR) default ./config
		configDir := os.Getenv("CONFIG_DIR")
		if configDir == "" {
			configDir = "config"
		}
		// Whether to load files (default: disabled to keep tests isolated)
		loadFiles := strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "1") || strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "true")
		// 1) base file
		if loadFiles {
			base := filepath.Join(configDir, "config.yaml")
			if _, err := os.Stat(base); err == nil {
				if err := k.Load(file.Provider(base), yaml.Parser()); err != nil {
					log.Printf("config: failed loading base: %v", err)
				}
			}
		}
		// 2) env-specific file
		envName := os.Getenv("APP_ENV")
		if envName == "" {
			envName = "local"
		}
		if loadFiles {
			envFile := filepath.Join(configDir, "config."+envName+".yaml")
			if _, err := os.Stat(envFile); err == nil {
				if err := k.Load(file.Provider(envFile), yaml.Parser()); err != nil {
					log.Printf("config: failed loading env file: %v", err)
				}
			}
		}
		// 3) env vars: AUTH_ prefix, __ delim for nesting
		_ = k.Load(env.Provider("AUTH_", "__", func(s string) string {
			// AUTH_SERVER__ADDR -> server.addr
			return s
		}), nil)

		var c AppConfig
		if err := k.Unmarshal("", &c); err != nil {
			log.Printf("config: unmarshal error: %v", err)
		}
		if c.Env == "" {
			c.Env = envName
		}
		cfgInst = &c
	})
	return cfgInst
}

// ListenAddr returns the effective listen address.
func (c *AppConfig) ListenAddr() string {
	if c != nil && c.Server.Addr != "" {
		return c.Server.Addr
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":9096"
}

// TokenConfig maps the settings onto a token store configuration,
// falling back to the defaults for unset fields.
func (c *AppConfig) TokenConfig() store.TokenConfig {
	cfg := store.DefaultTokenConfig()
	if c == nil {
		return cfg
	}
	if c.Token.Type != "" {
		cfg.TokenType = c.Token.Type
	}
	if c.Token.AccessTTL > 0 {
		cfg.AccessTTL = c.Token.AccessTTL
	}
	if c.Token.RefreshTTL > 0 {
		cfg.RefreshTTL = c.Token.RefreshTTL
	}
	cfg.RotateRefresh = cfg.RotateRefresh || c.Token.RotateRefresh
	return cfg
}

// BuildClientStore registers the configured clients in a secret-hashing
// store.
func (c *AppConfig) BuildClientStore() (*store.ClientStore, error) {
	cs := store.NewHashedClientStore()
	for _, cc := range c.Clients {
		cli := &models.Client{
			ID:          cc.ID,
			Secret:      cc.Secret,
			RedirectURI: cc.RedirectURI,
			Scopes:      cc.Scopes,
		}
		if err := cs.Set(cli.ID, cli); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// BuildUserStore registers the configured users.
func (c *AppConfig) BuildUserStore() (*store.UserStore, error) {
	us := store.NewUserStore()
	for _, uc := range c.Users {
		if uc.PasswordHash != "" {
			us.SetHashed(uc.ID, uc.PasswordHash)
			continue
		}
		if err := us.Set(uc.ID, uc.Password); err != nil {
			return nil, err
		}
	}
	return us, nil
}
