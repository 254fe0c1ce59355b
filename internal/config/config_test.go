package config

import (
	"os"
	"testing"
)

var renderKeys = []string{
	"RENDER_OUTPUT_DIR",
	"RENDER_FONT_METADATA_PATH",
	"RENDER_FONT_NAME",
	"RENDER_WORKERS",
	"RENDER_EMBED_QR_CODE",
	"RENDER_QR_URL_PATTERN",
}

func TestGetConfigRender(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want RenderConfig
	}{
		{
			name: "defaults",
			want: RenderConfig{OutputDir: "reports", FontMetadataPath: "font_metadata.json"},
		},
		{
			name: "from environment",
			env: map[string]string{
				"RENDER_OUTPUT_DIR":     "/srv/relatorios",
				"RENDER_FONT_NAME":      "DejaVu Sans",
				"RENDER_WORKERS":        "3",
				"RENDER_EMBED_QR_CODE":  "true",
				"RENDER_QR_URL_PATTERN": "https://example.com/r/{orderCode}",
			},
			want: RenderConfig{
				OutputDir:        "/srv/relatorios",
				FontMetadataPath: "font_metadata.json",
				FontName:         "DejaVu Sans",
				Workers:          3,
				EmbedQRCode:      true,
				QrURLPattern:     "https://example.com/r/{orderCode}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range renderKeys {
				// Setenv restores the original value after the test
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := GetConfig().Render; got != tt.want {
				t.Errorf("GetConfig().Render = %+v, want %+v", got, tt.want)
			}
		})
	}
}
