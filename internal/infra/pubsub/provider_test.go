package pubsub

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		want    any
		wantErr string
	}{
		{name: "unset drops notifications", pubsub: nil, want: &noopPublisher{}},
		{name: "empty provider", pubsub: &config.PubSubConfig{}, want: &noopPublisher{}},
		{
			name:   "local",
			pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"},
			want:   &pushEmulator{},
		},
		{
			name:    "local needs endpoint",
			pubsub:  &config.PubSubConfig{Provider: constants.PubSubProviderLocal},
			wantErr: "localEndpoint",
		},
		{
			name:    "google needs topic",
			pubsub:  &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "shop"},
			wantErr: "topicId",
		},
		{
			name:    "unknown provider",
			pubsub:  &config.PubSubConfig{Provider: "kafka"},
			wantErr: `"kafka"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{PubSub: tt.pubsub, Checkout: &config.CheckoutConfig{}}

			got, err := newTransport(context.Background(), cfg, newDiscardLogger())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}
