package config

import "fmt"

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	if err := validateTLSMode(tls); err != nil {
		return err
	}

	return validateTLSVersion(tls)
}

// validateTLSMode validates the TLS mode and associated requirements
func validateTLSMode(tls TLSConfig) error {
	switch tls.Mode {
	case "disabled":
		return nil // No validation needed for disabled mode
	case "server":
		return validateServerModeTLS(tls)
	case "mutual":
		return validateMutualModeTLS(tls)
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", tls.Mode)
	}
}

// validateServerModeTLS validates TLS configuration for server mode
func validateServerModeTLS(tls TLSConfig) error {
	if err := validateCertAndKey(tls, "server mode"); err != nil {
		return err
	}

	return validateExclusiveSource(tls.CertFile, tls.CertContent, "certFile", "certContent",
		tls.KeyFile, tls.KeyContent, "keyFile", "keyContent")
}

// validateMutualModeTLS validates TLS configuration for mutual mode
func validateMutualModeTLS(tls TLSConfig) error {
	if err := validateCertAndKey(tls, "mutual mode"); err != nil {
		return err
	}

	if !hasSource(tls.CAFile, tls.CAContent) {
		return fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
	}

	if err := validateExclusiveSource(tls.CertFile, tls.CertContent, "certFile", "certContent",
		tls.KeyFile, tls.KeyContent, "keyFile", "keyContent"); err != nil {
		return err
	}

	if err := validateExclusiveSource(tls.CAFile, tls.CAContent, "caFile", "caContent"); err != nil {
		return err
	}

	return validateClientAuthPolicy(tls)
}

// validateCertAndKey checks that both certificate and key are provided,
// from either a file path or inline content.
func validateCertAndKey(tls TLSConfig, mode string) error {
	if !hasSource(tls.CertFile, tls.CertContent) || !hasSource(tls.KeyFile, tls.KeyContent) {
		return fmt.Errorf("TLS certificate and key are required for %s (provide either files or content)", mode)
	}
	return nil
}

// hasSource reports whether at least one of the file path or inline content is set
func hasSource(file, content string) bool {
	return file != "" || content != ""
}

// validateExclusiveSource ensures each file/content pair has at most one source set.
// Pairs are passed as groups of four: file value, content value, file key, content key.
func validateExclusiveSource(pairs ...string) error {
	for i := 0; i+3 < len(pairs); i += 4 {
		file, content, fileKey, contentKey := pairs[i], pairs[i+1], pairs[i+2], pairs[i+3]
		if file != "" && content != "" {
			return fmt.Errorf("cannot specify both %s and %s - choose one", fileKey, contentKey)
		}
	}
	return nil
}

// validateClientAuthPolicy validates the client authentication policy
func validateClientAuthPolicy(tls TLSConfig) error {
	switch tls.ClientAuthPolicy {
	case "require", "request", "verify", "":
		return nil // Valid policies (empty defaults to require)
	default:
		return fmt.Errorf("invalid clientAuthPolicy: %s (must be 'require', 'request', or 'verify')", tls.ClientAuthPolicy)
	}
}

// validateTLSVersion validates the TLS version configuration
func validateTLSVersion(tls TLSConfig) error {
	switch tls.MinVersion {
	case "", "1.2", "1.3":
		return nil // Valid versions (empty defaults to 1.2)
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}
}
