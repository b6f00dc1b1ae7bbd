// Package config loads config.yaml, overridden by environment variables.
package config

import (
	"strings"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"
	defaultListingPageSize    = 2
	defaultNotifierDelay      = 10 * time.Second
	defaultPublishTimeout     = 30 * time.Second
	defaultSessionTTL         = 30 * 24 * time.Hour
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		// PublicBaseURL is the externally visible origin used in generated links.
		PublicBaseURL      string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Database controls schema management on startup
	Database *DatabaseConfig `json:"database" yaml:"database"`

	// Session configuration for anonymous cart/wishlist sessions
	Session *SessionConfig `json:"session" yaml:"session"`

	// Admin configuration for the catalog management endpoints
	Admin *AdminConfig `json:"admin" yaml:"admin"`

	// Listing configuration for the store page
	Listing *ListingConfig `json:"listing" yaml:"listing"`

	// Cart quantity rules
	Cart *CartConfig `json:"cart" yaml:"cart"`

	// Checkout stock rules
	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	// PubSub configuration for order notification events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Notifier configuration for the operator messaging worker
	Notifier *NotifierConfig `json:"notifier" yaml:"notifier"`

	// Media configuration for item/category/brand images
	Media *MediaConfig `json:"media" yaml:"media"`

	// QRCode configuration for item QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DatabaseConfig defines schema management options
type DatabaseConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// SessionConfig defines how anonymous session cookies are signed
type SessionConfig struct {
	Secret string        `json:"secret" yaml:"secret"`
	TTL    time.Duration `json:"ttl" yaml:"ttl"`
	Secure bool          `json:"secure" yaml:"secure"`
}

// AdminConfig defines the admin API key (bcrypt hash)
type AdminConfig struct {
	APIKeyHash string `json:"apiKeyHash" yaml:"apiKeyHash"`
}

// ListingConfig defines store listing options
type ListingConfig struct {
	PageSize int `json:"pageSize" yaml:"pageSize"`
}

// CartConfig defines cart quantity rules
type CartConfig struct {
	// AllowNonPositiveQuantity keeps the legacy unclamped minus behaviour
	AllowNonPositiveQuantity bool `json:"allowNonPositiveQuantity" yaml:"allowNonPositiveQuantity"`
}

// CheckoutConfig defines checkout stock rules
type CheckoutConfig struct {
	// AllowOversell lets stock go negative at checkout instead of failing
	AllowOversell bool `json:"allowOversell" yaml:"allowOversell"`
	// PublishTimeout bounds the background hand-off of a notification batch
	PublishTimeout time.Duration `json:"publishTimeout" yaml:"publishTimeout"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// NotifierConfig defines the operator messaging channel
type NotifierConfig struct {
	// Provider: "log", "telegram" or "firebase"
	Provider string `json:"provider" yaml:"provider"`

	// Port the worker listens on for push deliveries; 0 falls back to http.port
	Port int `json:"port" yaml:"port"`

	// InitialDelay holds each checkout's batch in the storefront before it is
	// published; the push handler itself never waits on it.
	InitialDelay time.Duration `json:"initialDelay" yaml:"initialDelay"`

	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`
}

// TelegramConfig defines the Telegram Bot API target
type TelegramConfig struct {
	BotToken string `json:"botToken" yaml:"botToken"`
	ChatID   string `json:"chatId" yaml:"chatId"`
	APIURL   string `json:"apiUrl" yaml:"apiUrl"`
}

// FirebaseConfig defines Firebase Cloud Messaging topic delivery
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	Topic           string `json:"topic" yaml:"topic"`
}

// MediaConfig defines where image blobs live
type MediaConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. file:///var/media or gs://bucket
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections so consumers never see nil pointers.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Database == nil {
		cfg.Database = &DatabaseConfig{}
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.Admin == nil {
		cfg.Admin = &AdminConfig{}
	}
	if cfg.Listing == nil {
		cfg.Listing = &ListingConfig{}
	}
	if cfg.Listing.PageSize <= 0 {
		cfg.Listing.PageSize = defaultListingPageSize
	}
	if cfg.Cart == nil {
		cfg.Cart = &CartConfig{}
	}
	if cfg.Checkout == nil {
		cfg.Checkout = &CheckoutConfig{}
	}
	if cfg.Checkout.PublishTimeout <= 0 {
		cfg.Checkout.PublishTimeout = defaultPublishTimeout
	}
	if cfg.Notifier == nil {
		cfg.Notifier = &NotifierConfig{}
	}
	if cfg.Notifier.InitialDelay < 0 {
		cfg.Notifier.InitialDelay = 0
	} else if cfg.Notifier.InitialDelay == 0 {
		cfg.Notifier.InitialDelay = defaultNotifierDelay
	}
	if cfg.Media == nil {
		cfg.Media = &MediaConfig{}
	}
	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"}
	}
}
