// File path: internal/config/config_test.go
package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Mode != ModePoll {
		t.Fatalf("unexpected default mode: %q", cfg.Mode)
	}
	if cfg.OutputDir == "" || cfg.DocumentFormat == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("REPORTBOT_MODE", "Webhook")
	t.Setenv("REPORTBOT_ADDR", ":9000")
	cfg := LoadConfig()
	if cfg.TelegramToken != "tok" || cfg.Mode != ModeWebhook || cfg.Addr != ":9000" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestMergeOverlaysNonEmptyFields(t *testing.T) {
	base := Config{Mode: ModePoll, Addr: ":8090", TelegramToken: "tok"}
	merged := base.Merge(Config{Mode: ModeWebhook})
	if merged.Mode != ModeWebhook {
		t.Fatalf("override ignored: %+v", merged)
	}
	if merged.Addr != ":8090" || merged.TelegramToken != "tok" {
		t.Fatalf("base fields lost: %+v", merged)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"poll ok", Config{Mode: ModePoll, TelegramToken: "tok"}, false},
		{"webhook ok", Config{Mode: ModeWebhook, TelegramToken: "tok", Addr: ":1"}, false},
		{"missing token", Config{Mode: ModePoll}, true},
		{"bad mode", Config{Mode: "carrier-pigeon", TelegramToken: "tok"}, true},
		{"webhook no addr", Config{Mode: ModeWebhook, TelegramToken: "tok"}, true},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
			t.Fatalf("%s: Validate() err=%v want error=%v", tc.name, err, tc.wantErr)
		}
	}
}
