package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recruitflow/internal/errors"

	"github.com/hashicorp/vault/api"
)

func newMockLogger() *errors.Logger {
	logger, _ := errors.New("debug")
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		path        string
		expected    int64
		expectError bool
	}{
		{
			name:     "int64 value",
			input:    int64(42),
			path:     "test/path",
			expected: 42,
		},
		{
			name:     "float64 value",
			input:    float64(42.0),
			path:     "test/path",
			expected: 42,
		},
		{
			name:     "string value",
			input:    "42",
			path:     "test/path",
			expected: 42,
		},
		{
			name:        "invalid string value",
			input:       "not-a-number",
			path:        "test/path",
			expectError: true,
		},
		{
			name:        "unsupported type",
			input:       []string{"42"},
			path:        "test/path",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, tt.path)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			Screen:   OperationAIConfig{},
			Schedule: OperationAIConfig{},
			Draft:    OperationAIConfig{},
			Send:     OperationAIConfig{},
		},
	}

	geminiKey := "test-gemini-key"
	applyGeminiKeyToConfig(config, geminiKey)

	if config.AI.APIKey != geminiKey {
		t.Errorf("expected global API key %q, got %q", geminiKey, config.AI.APIKey)
	}
	for _, op := range []struct {
		name string
		key  string
	}{
		{"screen", config.AI.Screen.APIKey},
		{"schedule", config.AI.Schedule.APIKey},
		{"draft", config.AI.Draft.APIKey},
		{"send", config.AI.Send.APIKey},
	} {
		if op.key != geminiKey {
			t.Errorf("expected %s API key %q, got %q", op.name, geminiKey, op.key)
		}
	}
}

func TestApplyGeminiKeyToConfigWithExistingKeys(t *testing.T) {
	existingScreenKey := "existing-screen-key"
	config := &Config{
		AI: AIConfig{
			Screen:   OperationAIConfig{APIKey: existingScreenKey},
			Schedule: OperationAIConfig{},
			Draft:    OperationAIConfig{},
			Send:     OperationAIConfig{},
		},
	}

	geminiKey := "test-gemini-key"
	applyGeminiKeyToConfig(config, geminiKey)

	if config.AI.APIKey != geminiKey {
		t.Errorf("expected global API key %q, got %q", geminiKey, config.AI.APIKey)
	}
	// Should not overwrite an existing operation-specific key
	if config.AI.Screen.APIKey != existingScreenKey {
		t.Errorf("expected screen API key %q, got %q", existingScreenKey, config.AI.Screen.APIKey)
	}
	if config.AI.Schedule.APIKey != geminiKey {
		t.Errorf("expected schedule API key %q, got %q", geminiKey, config.AI.Schedule.APIKey)
	}
	if config.AI.Send.APIKey != geminiKey {
		t.Errorf("expected send API key %q, got %q", geminiKey, config.AI.Send.APIKey)
	}
}

func TestLoadSingleCertificate(t *testing.T) {
	logger := newMockLogger()

	tests := []struct {
		name        string
		tlsData     *VaultSecret
		key         string
		description string
		expected    int
		expectValue string
	}{
		{
			name: "valid certificate content",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"cert": "-----BEGIN CERTIFICATE-----\ntest-cert\n-----END CERTIFICATE-----",
				},
			},
			key:         "cert",
			description: "TLS certificate content",
			expected:    1,
			expectValue: "-----BEGIN CERTIFICATE-----\ntest-cert\n-----END CERTIFICATE-----",
		},
		{
			name: "empty certificate content",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"cert": "",
				},
			},
			key:         "cert",
			description: "TLS certificate content",
			expected:    0,
			expectValue: "",
		},
		{
			name: "missing certificate key",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"other": "value",
				},
			},
			key:         "cert",
			description: "TLS certificate content",
			expected:    0,
			expectValue: "",
		},
		{
			name: "non-string certificate value",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"cert": 123,
				},
			},
			key:         "cert",
			description: "TLS certificate content",
			expected:    0,
			expectValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target string
			result := loadSingleCertificate(tt.tlsData, tt.key, &target, tt.description, logger)

			if result != tt.expected {
				t.Errorf("expected count %d, got %d", tt.expected, result)
			}
			if target != tt.expectValue {
				t.Errorf("expected value %q, got %q", tt.expectValue, target)
			}
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	logger := newMockLogger()

	t.Run("token from config", func(t *testing.T) {
		config := VaultConfig{
			Token: "direct-token",
		}

		token, err := resolveVaultToken(config, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "direct-token" {
			t.Errorf("expected 'direct-token', got %q", token)
		}
	})

	t.Run("token from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "vault-token")
		if err := os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600); err != nil {
			t.Fatalf("failed to write token file: %v", err)
		}

		config := VaultConfig{
			TokenFile: tokenFile,
		}

		token, err := resolveVaultToken(config, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "file-token" { // Should be trimmed
			t.Errorf("expected 'file-token', got %q", token)
		}
	})

	t.Run("missing token file", func(t *testing.T) {
		config := VaultConfig{
			TokenFile: "/nonexistent/token/file",
		}

		_, err := resolveVaultToken(config, logger)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "failed to read vault token file") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("no token provided", func(t *testing.T) {
		config := VaultConfig{}

		_, err := resolveVaultToken(config, logger)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "vault token is required") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("empty token from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "empty-token")
		if err := os.WriteFile(tokenFile, []byte("   \n  \n"), 0600); err != nil {
			t.Fatalf("failed to write token file: %v", err)
		}

		config := VaultConfig{
			TokenFile: tokenFile,
		}

		_, err := resolveVaultToken(config, logger)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "vault token is required") {
			t.Errorf("unexpected error message: %v", err)
		}
	})
}

func TestValidateTLSDeprecatedFields(t *testing.T) {
	logger := newMockLogger()

	tests := []struct {
		name        string
		tlsData     *VaultSecret
		expectError bool
		errorField  string
	}{
		{
			name: "no deprecated fields",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"cert": "cert-content",
					"key":  "key-content",
					"ca":   "ca-content",
				},
			},
			expectError: false,
		},
		{
			name: "deprecated cert_file field",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"cert_file": "/path/to/cert",
				},
			},
			expectError: true,
			errorField:  "cert_file",
		},
		{
			name: "deprecated key_file field",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"key_file": "/path/to/key",
				},
			},
			expectError: true,
			errorField:  "key_file",
		},
		{
			name: "deprecated ca_file field",
			tlsData: &VaultSecret{
				Data: map[string]any{
					"ca_file": "/path/to/ca",
				},
			},
			expectError: true,
			errorField:  "ca_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSDeprecatedFields(tt.tlsData, logger)

			if !tt.expectError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("expected error to mention %q: %v", tt.errorField, err)
			}
			if !strings.Contains(err.Error(), "no longer supported") {
				t.Errorf("expected error to mention 'no longer supported': %v", err)
			}
		})
	}
}

func TestLoadTLSCertificateContent(t *testing.T) {
	logger := newMockLogger()

	config := &Config{
		Server: ServerConfig{
			TLS: TLSConfig{},
		},
	}

	tlsData := &VaultSecret{
		Data: map[string]any{
			"cert": "cert-content",
			"key":  "key-content",
			"ca":   "ca-content",
		},
	}

	certCount := loadTLSCertificateContent(config, tlsData, logger)

	if certCount != 3 {
		t.Errorf("expected 3 certificates loaded, got %d", certCount)
	}
	if config.Server.TLS.CertContent != "cert-content" {
		t.Errorf("unexpected cert content: %q", config.Server.TLS.CertContent)
	}
	if config.Server.TLS.KeyContent != "key-content" {
		t.Errorf("unexpected key content: %q", config.Server.TLS.KeyContent)
	}
	if config.Server.TLS.CAContent != "ca-content" {
		t.Errorf("unexpected CA content: %q", config.Server.TLS.CAContent)
	}
}

func TestLoadTLSCertificateContentPartial(t *testing.T) {
	logger := newMockLogger()

	config := &Config{
		Server: ServerConfig{
			TLS: TLSConfig{},
		},
	}

	tlsData := &VaultSecret{
		Data: map[string]any{
			"cert": "cert-content",
			// Missing key and ca
		},
	}

	certCount := loadTLSCertificateContent(config, tlsData, logger)

	if certCount != 1 {
		t.Errorf("expected 1 certificate loaded, got %d", certCount)
	}
	if config.Server.TLS.CertContent != "cert-content" {
		t.Errorf("unexpected cert content: %q", config.Server.TLS.CertContent)
	}
	if config.Server.TLS.KeyContent != "" {
		t.Errorf("expected empty key content, got %q", config.Server.TLS.KeyContent)
	}
	if config.Server.TLS.CAContent != "" {
		t.Errorf("expected empty CA content, got %q", config.Server.TLS.CAContent)
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	logger := newMockLogger()

	config := &Config{
		Vault: VaultConfig{
			Enabled: false,
		},
	}

	if err := ApplyVaultSecrets(config, logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseInt64(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int64
		expectError bool
	}{
		{
			name:     "valid positive number",
			input:    "42",
			expected: 42,
		},
		{
			name:     "valid negative number",
			input:    "-42",
			expected: -42,
		},
		{
			name:     "zero",
			input:    "0",
			expected: 0,
		},
		{
			name:        "invalid string",
			input:       "not-a-number",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "float string",
			input:       "42.5",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseInt64(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestVaultClientExtractSecretData(t *testing.T) {
	logger := newMockLogger()
	vc := &VaultClient{
		logger: logger,
	}

	tests := []struct {
		name        string
		secret      *api.Secret
		path        string
		expectError bool
		expected    map[string]any
	}{
		{
			name: "valid KVv2 secret",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"data": map[string]interface{}{
						"key1": "value1",
						"key2": "value2",
					},
				},
			},
			path:     "secret/test",
			expected: map[string]any{"key1": "value1", "key2": "value2"},
		},
		{
			name: "missing data field",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"metadata": map[string]interface{}{},
				},
			},
			path:        "secret/test",
			expectError: true,
		},
		{
			name: "data field wrong type",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"data": "not-a-map",
				},
			},
			path:        "secret/test",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := vc.extractSecretData(tt.secret, tt.path)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d", len(tt.expected), len(result))
			}
			for k, v := range tt.expected {
				if result[k] != v {
					t.Errorf("expected %s=%v, got %v", k, v, result[k])
				}
			}
		})
	}
}

func TestVaultClientExtractSecretVersion(t *testing.T) {
	logger := newMockLogger()
	vc := &VaultClient{
		logger: logger,
	}

	tests := []struct {
		name        string
		secret      *api.Secret
		path        string
		expectError bool
		expected    int64
	}{
		{
			name: "valid version as int64",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"metadata": map[string]interface{}{
						"version": int64(42),
					},
				},
			},
			path:     "secret/test",
			expected: 42,
		},
		{
			name: "valid version as float64",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"metadata": map[string]interface{}{
						"version": float64(42),
					},
				},
			},
			path:     "secret/test",
			expected: 42,
		},
		{
			name: "missing metadata field",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"data": map[string]interface{}{},
				},
			},
			path:        "secret/test",
			expectError: true,
		},
		{
			name: "missing version field",
			secret: &api.Secret{
				Data: map[string]interface{}{
					"metadata": map[string]interface{}{
						"other": "value",
					},
				},
			},
			path:        "secret/test",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := vc.extractSecretVersion(tt.secret, tt.path)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected version %d, got %d", tt.expected, result)
			}
		})
	}
}
