package config

import (
	"sync"
)

var (
	loadedPrompts     AllLoadedPrompts
	loadedPromptsOnce sync.Once
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	Screen   string
	Schedule string
	Draft    string
	Send     string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	Screen   string
	Schedule string
	Draft    string
	Send     string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global   LoadedPrompts
	Screen   OperationLoadedPrompts
	Schedule OperationLoadedPrompts
	Draft    OperationLoadedPrompts
	Send     OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	switch operationType {
	case "screen":
		return loadedPrompts.Screen
	case "schedule":
		return loadedPrompts.Schedule
	case "draft":
		return loadedPrompts.Draft
	case "send":
		return loadedPrompts.Send
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
