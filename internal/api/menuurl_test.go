package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMenuURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"パブリックIP", "https://8.8.8.8/menu.txt", false},
		{"パブリックIPv6", "http://[2001:4860:4860::8888]/menu", false},

		{"不正なスキーム", "gopher://example.com", true},
		{"GCSスキーム", "gs://my-bucket/menu.txt", true},
		{"ループバック", "http://127.0.0.1/admin", true},
		{"IPv6ループバック", "http://[::1]/admin", true},
		{"IPv4射影のループバック", "http://[::ffff:127.0.0.1]/admin", true},
		{"プライベートIP", "http://10.255.255.254/metadata", true},
		{"リンクローカル", "http://169.254.169.254/latest/meta-data", true},
		{"未指定アドレス", "http://0.0.0.0/", true},
		{"相対パス", "menu.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMenuURL(context.Background(), tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
