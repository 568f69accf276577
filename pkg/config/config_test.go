package config

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App: AppConfig{Name: "rcsppd"},
				Log: LogConfig{Level: "info"},
			},
			wantErr: false,
		},
		{
			name: "missing app name",
			cfg: Config{
				Log: LogConfig{Level: "info"},
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				App: AppConfig{Name: "rcsppd"},
				Log: LogConfig{Level: "verbose"},
			},
			wantErr: true,
		},
		{
			name: "invalid search direction",
			cfg: Config{
				App:    AppConfig{Name: "rcsppd"},
				Log:    LogConfig{Level: "info"},
				Search: SearchConfig{DefaultDirection: "sideways"},
			},
			wantErr: true,
		},
		{
			name: "metrics enabled with bad port",
			cfg: Config{
				App:     AppConfig{Name: "rcsppd"},
				Log:     LogConfig{Level: "info"},
				Metrics: MetricsConfig{Enabled: true, Port: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := Config{App: AppConfig{Environment: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to be true")
	}
	cfg.App.Environment = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to be false")
	}
}
