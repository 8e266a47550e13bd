package config

import (
	"strings"
	"testing"
)

// checkValidationError fails the test when the error outcome does not match expectations
func checkValidationError(t *testing.T, err error, expectError bool, errorMsg string) {
	t.Helper()

	if !expectError {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if errorMsg != "" && !strings.Contains(err.Error(), errorMsg) {
		t.Errorf("expected error containing %q, got %q", errorMsg, err.Error())
	}
}

func TestValidateTLSMode(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "disabled mode",
			tls: TLSConfig{
				Mode: "disabled",
			},
			expectError: false,
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "mutual mode valid",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
				CAFile:   "/path/to/ca.pem",
			},
			expectError: false,
		},
		{
			name: "invalid mode",
			tls: TLSConfig{
				Mode: "invalid",
			},
			expectError: true,
			errorMsg:    "invalid TLS mode: invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateTLSMode(tt.tls), tt.expectError, tt.errorMsg)
		})
	}
}

func TestValidateServerModeTLS(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid with files",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "valid with content",
			tls: TLSConfig{
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
			expectError: false,
		},
		{
			name: "mixed sources valid",
			tls: TLSConfig{
				CertFile:   "/path/to/cert.pem",
				KeyContent: "key-content",
			},
			expectError: false,
		},
		{
			name: "missing certificate",
			tls: TLSConfig{
				KeyFile: "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name: "missing key",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name: "duplicate cert sources",
			tls: TLSConfig{
				CertFile:    "/path/to/cert.pem",
				CertContent: "cert-content",
				KeyFile:     "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "cannot specify both certFile and certContent",
		},
		{
			name: "duplicate key sources",
			tls: TLSConfig{
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				KeyContent: "key-content",
			},
			expectError: true,
			errorMsg:    "cannot specify both keyFile and keyContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateServerModeTLS(tt.tls), tt.expectError, tt.errorMsg)
		})
	}
}

func TestValidateMutualModeTLS(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid with files",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
				CAFile:   "/path/to/ca.pem",
			},
			expectError: false,
		},
		{
			name: "valid with content",
			tls: TLSConfig{
				CertContent: "cert-content",
				KeyContent:  "key-content",
				CAContent:   "ca-content",
			},
			expectError: false,
		},
		{
			name: "valid with require policy",
			tls: TLSConfig{
				CertFile:         "/path/to/cert.pem",
				KeyFile:          "/path/to/key.pem",
				CAFile:           "/path/to/ca.pem",
				ClientAuthPolicy: "require",
			},
			expectError: false,
		},
		{
			name: "missing CA",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "CA certificate is required for mutual TLS mode",
		},
		{
			name: "duplicate CA sources",
			tls: TLSConfig{
				CertFile:  "/path/to/cert.pem",
				KeyFile:   "/path/to/key.pem",
				CAFile:    "/path/to/ca.pem",
				CAContent: "ca-content",
			},
			expectError: true,
			errorMsg:    "cannot specify both caFile and caContent",
		},
		{
			name: "invalid client auth policy",
			tls: TLSConfig{
				CertFile:         "/path/to/cert.pem",
				KeyFile:          "/path/to/key.pem",
				CAFile:           "/path/to/ca.pem",
				ClientAuthPolicy: "invalid",
			},
			expectError: true,
			errorMsg:    "invalid clientAuthPolicy: invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateMutualModeTLS(tt.tls), tt.expectError, tt.errorMsg)
		})
	}
}

func TestValidateCertAndKey(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		mode        string
		expectError bool
	}{
		{
			name: "both files provided",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			mode:        "server mode",
			expectError: false,
		},
		{
			name: "both content provided",
			tls: TLSConfig{
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
			mode:        "mutual mode",
			expectError: false,
		},
		{
			name: "mixed sources valid",
			tls: TLSConfig{
				CertFile:   "/path/to/cert.pem",
				KeyContent: "key-content",
			},
			mode:        "server mode",
			expectError: false,
		},
		{
			name: "missing certificate",
			tls: TLSConfig{
				KeyFile: "/path/to/key.pem",
			},
			mode:        "server mode",
			expectError: true,
		},
		{
			name: "missing key",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
			},
			mode:        "mutual mode",
			expectError: true,
		},
		{
			name:        "both missing",
			tls:         TLSConfig{},
			mode:        "server mode",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCertAndKey(tt.tls, tt.mode)

			checkValidationError(t, err, tt.expectError, "TLS certificate and key are required")
			if tt.expectError && !strings.Contains(err.Error(), tt.mode) {
				t.Errorf("expected error to mention mode %q: %v", tt.mode, err)
			}
		})
	}
}

func TestValidateExclusiveSource(t *testing.T) {
	tests := []struct {
		name        string
		pairs       []string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "file only",
			pairs:       []string{"/path/to/cert.pem", "", "certFile", "certContent"},
			expectError: false,
		},
		{
			name:        "content only",
			pairs:       []string{"", "cert-content", "certFile", "certContent"},
			expectError: false,
		},
		{
			name:        "neither set",
			pairs:       []string{"", "", "caFile", "caContent"},
			expectError: false,
		},
		{
			name:        "both set",
			pairs:       []string{"/path/to/cert.pem", "cert-content", "certFile", "certContent"},
			expectError: true,
			errorMsg:    "cannot specify both certFile and certContent",
		},
		{
			name: "second pair conflicts",
			pairs: []string{
				"/path/to/cert.pem", "", "certFile", "certContent",
				"/path/to/key.pem", "key-content", "keyFile", "keyContent",
			},
			expectError: true,
			errorMsg:    "cannot specify both keyFile and keyContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateExclusiveSource(tt.pairs...), tt.expectError, tt.errorMsg)
		})
	}
}

func TestValidateClientAuthPolicy(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name: "require policy",
			tls: TLSConfig{
				ClientAuthPolicy: "require",
			},
			expectError: false,
		},
		{
			name: "request policy",
			tls: TLSConfig{
				ClientAuthPolicy: "request",
			},
			expectError: false,
		},
		{
			name: "verify policy",
			tls: TLSConfig{
				ClientAuthPolicy: "verify",
			},
			expectError: false,
		},
		{
			name: "empty policy (default)",
			tls: TLSConfig{
				ClientAuthPolicy: "",
			},
			expectError: false,
		},
		{
			name: "invalid policy",
			tls: TLSConfig{
				ClientAuthPolicy: "invalid",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateClientAuthPolicy(tt.tls), tt.expectError, "invalid clientAuthPolicy")
		})
	}
}

func TestValidateTLSVersion(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name: "empty version (default)",
			tls: TLSConfig{
				MinVersion: "",
			},
			expectError: false,
		},
		{
			name: "TLS 1.2",
			tls: TLSConfig{
				MinVersion: "1.2",
			},
			expectError: false,
		},
		{
			name: "TLS 1.3",
			tls: TLSConfig{
				MinVersion: "1.3",
			},
			expectError: false,
		},
		{
			name: "invalid version",
			tls: TLSConfig{
				MinVersion: "1.1",
			},
			expectError: true,
		},
		{
			name: "invalid version string",
			tls: TLSConfig{
				MinVersion: "invalid",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, validateTLSVersion(tt.tls), tt.expectError, "invalid TLS minVersion")
		})
	}
}

// TestValidateTLSConfigIntegration exercises ValidateTLSConfig with realistic configurations
func TestValidateTLSConfigIntegration(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name: "complete valid server config",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:       "server",
						CertFile:   "/path/to/cert.pem",
						KeyFile:    "/path/to/key.pem",
						MinVersion: "1.2",
					},
				},
			},
			expectError: false,
		},
		{
			name: "complete valid mutual config",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:             "mutual",
						CertContent:      "cert-content",
						KeyContent:       "key-content",
						CAContent:        "ca-content",
						ClientAuthPolicy: "require",
						MinVersion:       "1.3",
					},
				},
			},
			expectError: false,
		},
		{
			name: "disabled TLS",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode: "disabled",
					},
				},
			},
			expectError: false,
		},
		{
			name: "invalid mode with valid certs",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:     "invalid",
						CertFile: "/path/to/cert.pem",
						KeyFile:  "/path/to/key.pem",
					},
				},
			},
			expectError: true,
			errorMsg:    "invalid TLS mode: invalid",
		},
		{
			name: "valid mode with invalid version",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:       "server",
						CertFile:   "/path/to/cert.pem",
						KeyFile:    "/path/to/key.pem",
						MinVersion: "1.0",
					},
				},
			},
			expectError: true,
			errorMsg:    "invalid TLS minVersion: 1.0",
		},
		{
			name: "server mode missing certificates",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:       "server",
						MinVersion: "1.2",
					},
				},
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name: "mutual mode missing CA",
			config: Config{
				Server: ServerConfig{
					TLS: TLSConfig{
						Mode:     "mutual",
						CertFile: "/path/to/cert.pem",
						KeyFile:  "/path/to/key.pem",
					},
				},
			},
			expectError: true,
			errorMsg:    "CA certificate is required for mutual TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkValidationError(t, tt.config.ValidateTLSConfig(), tt.expectError, tt.errorMsg)
		})
	}
}
