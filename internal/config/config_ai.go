package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetScreenConfig returns the AI configuration for screening operations with fallback to global config
func (c *Config) GetScreenConfig() OperationAIConfig {
	config := c.AI.Screen
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Screen == "" {
		config.CustomPrompts.SystemPrompts.Screen = c.AI.CustomPrompts.SystemPrompts.Screen
	}
	if config.CustomPrompts.UserPrompts.Screen == "" {
		config.CustomPrompts.UserPrompts.Screen = c.AI.CustomPrompts.UserPrompts.Screen
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ScreenFile == "" {
		config.CustomPrompts.SystemPrompts.ScreenFile = c.AI.CustomPrompts.SystemPrompts.ScreenFile
	}
	if config.CustomPrompts.UserPrompts.ScreenFile == "" {
		config.CustomPrompts.UserPrompts.ScreenFile = c.AI.CustomPrompts.UserPrompts.ScreenFile
	}

	return config
}

// GetScheduleConfig returns the AI configuration for scheduling operations with fallback to global config
func (c *Config) GetScheduleConfig() OperationAIConfig {
	config := c.AI.Schedule
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Schedule == "" {
		config.CustomPrompts.SystemPrompts.Schedule = c.AI.CustomPrompts.SystemPrompts.Schedule
	}
	if config.CustomPrompts.UserPrompts.Schedule == "" {
		config.CustomPrompts.UserPrompts.Schedule = c.AI.CustomPrompts.UserPrompts.Schedule
	}
	if config.CustomPrompts.SystemPrompts.ScheduleFile == "" {
		config.CustomPrompts.SystemPrompts.ScheduleFile = c.AI.CustomPrompts.SystemPrompts.ScheduleFile
	}
	if config.CustomPrompts.UserPrompts.ScheduleFile == "" {
		config.CustomPrompts.UserPrompts.ScheduleFile = c.AI.CustomPrompts.UserPrompts.ScheduleFile
	}

	return config
}

// GetDraftConfig returns the AI configuration for email drafting operations with fallback to global config
func (c *Config) GetDraftConfig() OperationAIConfig {
	config := c.AI.Draft
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Draft == "" {
		config.CustomPrompts.SystemPrompts.Draft = c.AI.CustomPrompts.SystemPrompts.Draft
	}
	if config.CustomPrompts.UserPrompts.Draft == "" {
		config.CustomPrompts.UserPrompts.Draft = c.AI.CustomPrompts.UserPrompts.Draft
	}
	if config.CustomPrompts.SystemPrompts.DraftFile == "" {
		config.CustomPrompts.SystemPrompts.DraftFile = c.AI.CustomPrompts.SystemPrompts.DraftFile
	}
	if config.CustomPrompts.UserPrompts.DraftFile == "" {
		config.CustomPrompts.UserPrompts.DraftFile = c.AI.CustomPrompts.UserPrompts.DraftFile
	}

	return config
}

// GetSendConfig returns the AI configuration for email sending operations with fallback to global config
func (c *Config) GetSendConfig() OperationAIConfig {
	config := c.AI.Send
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Send == "" {
		config.CustomPrompts.SystemPrompts.Send = c.AI.CustomPrompts.SystemPrompts.Send
	}
	if config.CustomPrompts.UserPrompts.Send == "" {
		config.CustomPrompts.UserPrompts.Send = c.AI.CustomPrompts.UserPrompts.Send
	}
	if config.CustomPrompts.SystemPrompts.SendFile == "" {
		config.CustomPrompts.SystemPrompts.SendFile = c.AI.CustomPrompts.SystemPrompts.SendFile
	}
	if config.CustomPrompts.UserPrompts.SendFile == "" {
		config.CustomPrompts.UserPrompts.SendFile = c.AI.CustomPrompts.UserPrompts.SendFile
	}

	return config
}

// GetLoadedScreenPrompts returns a copy of the loaded prompts for the screen operation
func (c *Config) GetLoadedScreenPrompts() OperationLoadedPrompts {
	return loadedPrompts.Screen
}

// GetLoadedSchedulePrompts returns a copy of the loaded prompts for the schedule operation
func (c *Config) GetLoadedSchedulePrompts() OperationLoadedPrompts {
	return loadedPrompts.Schedule
}

// GetLoadedDraftPrompts returns a copy of the loaded prompts for the draft operation
func (c *Config) GetLoadedDraftPrompts() OperationLoadedPrompts {
	return loadedPrompts.Draft
}

// GetLoadedSendPrompts returns a copy of the loaded prompts for the send operation
func (c *Config) GetLoadedSendPrompts() OperationLoadedPrompts {
	return loadedPrompts.Send
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
