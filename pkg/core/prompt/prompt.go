// Package prompt provides a centralized prompt library for LLM interactions.
// Prompts live in JSON files under resources/prompts and are loaded at
// runtime, so wording can change without code changes. Hardcoded defaults
// cover deployments that ship without the resources directory.
package prompt

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"
)

// Template is a reusable prompt with metadata.
type Template struct {
	ID             string `json:"id"`                   // e.g. "report.humanize"
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // report, vision, ...
	Description    string `json:"description"`          // Purpose of the prompt
	SystemPrompt   string `json:"system_prompt"`        // System prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for the user prompt
	Version        string `json:"version"`
}

// RenderUser executes the user prompt template with the given variables.
func (t *Template) RenderUser(vars map[string]interface{}) (string, error) {
	tmpl, err := template.New(t.ID).Parse(t.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("prompt %s: bad template: %w", t.ID, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("prompt %s: render failed: %w", t.ID, err)
	}
	return buf.String(), nil
}

// Registry holds all loaded prompt templates.
type Registry struct {
	prompts map[string]*Template
	mu      sync.RWMutex
}

var globalRegistry *Registry
var once sync.Once

// Get returns the global registry singleton with defaults registered.
func Get() *Registry {
	once.Do(func() {
		globalRegistry = &Registry{prompts: make(map[string]*Template)}
		registerDefaults(globalRegistry)
	})
	return globalRegistry
}

// Register adds a prompt template, replacing any default with the same ID.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("prompt ID cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[t.ID] = t
	return nil
}

// GetPrompt retrieves a prompt by ID.
func (r *Registry) GetPrompt(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.prompts[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("prompt not found: %s", id)
}

// GetSystemPrompt is a convenience to get only the system prompt string.
func (r *Registry) GetSystemPrompt(id string) (string, error) {
	pt, err := r.GetPrompt(id)
	if err != nil {
		return "", err
	}
	return pt.SystemPrompt, nil
}

// Count returns the number of registered prompts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prompts)
}

// Clear removes all prompts and re-registers defaults (useful for tests).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = make(map[string]*Template)
	registerDefaults(r)
}

// registerDefaults installs the built-in prompts. Caller may hold the lock;
// the map writes here go through Register only when called without it.
func registerDefaults(r *Registry) {
	for _, t := range defaultTemplates() {
		r.prompts[t.ID] = t
	}
}
