package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Screen operation defaults
	v.SetDefault("ai.screen.provider", "gemini")
	v.SetDefault("ai.screen.model", "")
	v.SetDefault("ai.screen.timeout", 90*time.Second) // Resumes can be long
	v.SetDefault("ai.screen.apiKey", "")
	v.SetDefault("ai.screen.maxRetries", 2)
	v.SetDefault("ai.screen.temperature", 0.2) // Low temperature for consistent scoring
	v.SetDefault("ai.screen.useSystemPrompts", true)

	// AI Configuration - Schedule operation defaults
	v.SetDefault("ai.schedule.provider", "gemini")
	v.SetDefault("ai.schedule.model", "")
	v.SetDefault("ai.schedule.timeout", 45*time.Second)
	v.SetDefault("ai.schedule.apiKey", "")
	v.SetDefault("ai.schedule.maxRetries", 2)
	v.SetDefault("ai.schedule.temperature", 0.3)
	v.SetDefault("ai.schedule.useSystemPrompts", true)

	// AI Configuration - Draft operation defaults
	v.SetDefault("ai.draft.provider", "gemini")
	v.SetDefault("ai.draft.model", "")
	v.SetDefault("ai.draft.timeout", 60*time.Second)
	v.SetDefault("ai.draft.apiKey", "")
	v.SetDefault("ai.draft.maxRetries", 3)
	v.SetDefault("ai.draft.temperature", 0.5) // Some creative latitude for email copy
	v.SetDefault("ai.draft.useSystemPrompts", true)

	// AI Configuration - Send operation defaults
	v.SetDefault("ai.send.provider", "gemini")
	v.SetDefault("ai.send.model", "")
	v.SetDefault("ai.send.timeout", 30*time.Second)
	v.SetDefault("ai.send.apiKey", "")
	v.SetDefault("ai.send.maxRetries", 3)
	v.SetDefault("ai.send.temperature", 0.1)
	v.SetDefault("ai.send.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range []string{"screen", "schedule", "draft", "send"} {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Pipeline Configuration
	v.SetDefault("pipeline.minScore", 5.0)
	v.SetDefault("pipeline.timezoneLabel", "IST")
	v.SetDefault("pipeline.roleTitle", "Software Engineer")
	v.SetDefault("pipeline.interviewerName", "Dirk Brand")
	v.SetDefault("pipeline.interviewerEmail", "dirk@example.com")
	v.SetDefault("pipeline.senderName", "John Doe")
	v.SetDefault("pipeline.senderTitle", "Senior Software Engineer")
	v.SetDefault("pipeline.pdftotextPath", "pdftotext")

	// Watch Configuration
	v.SetDefault("watch.dir", "")
	v.SetDefault("watch.jobFile", "")
	v.SetDefault("watch.debounceDelay", 2*time.Second)
	v.SetDefault("watch.processOnStart", false)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "recruitflow")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
