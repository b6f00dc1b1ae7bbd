// Package constants holds string values shared across layers.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers for the order notification queue.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Messenger providers used by the notifier worker.
const (
	MessengerProviderLog      = "log"
	MessengerProviderTelegram = "telegram"
	MessengerProviderFirebase = "firebase"
)

// SessionCookieName is the cookie carrying the signed anonymous session token.
const SessionCookieName = "storefront_session"
