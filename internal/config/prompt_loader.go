package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFileBinding pairs a configured prompt file path with the loaded-content target
type promptFileBinding struct {
	filePath   string
	target     *string
	promptType string
	operation  string
}

// systemPromptBindings lists the file-backed system prompts for a prompt set
func systemPromptBindings(prompts *SystemPrompts, target *LoadedSystemPrompts) []promptFileBinding {
	return []promptFileBinding{
		{prompts.ScreenFile, &target.Screen, "system", "screen"},
		{prompts.ScheduleFile, &target.Schedule, "system", "schedule"},
		{prompts.DraftFile, &target.Draft, "system", "draft"},
		{prompts.SendFile, &target.Send, "system", "send"},
	}
}

// userPromptBindings lists the file-backed user prompts for a prompt set
func userPromptBindings(prompts *UserPrompts, target *LoadedUserPrompts) []promptFileBinding {
	return []promptFileBinding{
		{prompts.ScreenFile, &target.Screen, "user", "screen"},
		{prompts.ScheduleFile, &target.Schedule, "user", "schedule"},
		{prompts.DraftFile, &target.Draft, "user", "draft"},
		{prompts.SendFile, &target.Send, "user", "send"},
	}
}

// promptBindings lists every file-backed prompt across global and operation-specific configs
func (c *Config) promptBindings() []promptFileBinding {
	bindings := systemPromptBindings(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts)
	bindings = append(bindings, userPromptBindings(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts)...)

	opConfigs := []struct {
		cfg    *OperationAIConfig
		loaded *OperationLoadedPrompts
	}{
		{&c.AI.Screen, &loadedPrompts.Screen},
		{&c.AI.Schedule, &loadedPrompts.Schedule},
		{&c.AI.Draft, &loadedPrompts.Draft},
		{&c.AI.Send, &loadedPrompts.Send},
	}
	for _, op := range opConfigs {
		bindings = append(bindings, systemPromptBindings(&op.cfg.CustomPrompts.SystemPrompts, &op.loaded.SystemPrompts)...)
		bindings = append(bindings, userPromptBindings(&op.cfg.CustomPrompts.UserPrompts, &op.loaded.UserPrompts)...)
	}

	return bindings
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	loadedCount := 0
	for _, binding := range c.promptBindings() {
		if binding.filePath == "" {
			continue
		}
		content, err := loadPromptFromFile(binding.filePath, binding.promptType, binding.operation)
		if err != nil {
			return fmt.Errorf("failed to load %s %s prompt: %w", binding.promptType, binding.operation, err)
		}
		*binding.target = content
		loadedCount++
	}

	if loadedCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", loadedCount)
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, binding := range c.promptBindings() {
		if binding.filePath == "" {
			continue
		}

		absPath, err := filepath.Abs(binding.filePath)
		if err != nil {
			validationErrors = append(validationErrors,
				fmt.Sprintf("invalid path for %s %s prompt: %s", binding.promptType, binding.operation, binding.filePath))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s %s prompt file not found: %s", binding.promptType, binding.operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
