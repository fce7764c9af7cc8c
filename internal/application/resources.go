package application

import (
	"encoding/json"
	"fmt"
	"time"

	"insight-mcp-server/internal/domain"
)

// Resource describes one read-only resource in the catalog.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ResourceContent is one entry in a resources/read result.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Resource URIs served by the registry.
const (
	ResourceAppConfig   = "config://app"
	ResourceToolCatalog = "catalog://tools"
	ResourceHealth      = "health://status"
)

// ResourceRegistry serves the fixed set of read-only resources. Reads are
// snapshots generated at read time; nothing is cached.
type ResourceRegistry struct {
	config  *domain.Config
	router  *ToolRouter
	started time.Time
}

// NewResourceRegistry creates a registry over the live configuration and
// tool catalog.
func NewResourceRegistry(config *domain.Config, router *ToolRouter) *ResourceRegistry {
	return &ResourceRegistry{
		config:  config,
		router:  router,
		started: time.Now(),
	}
}

// List returns the resource catalog.
func (r *ResourceRegistry) List() []Resource {
	return []Resource{
		{
			URI:         ResourceAppConfig,
			Name:        "Application Configuration",
			Description: "Current server configuration with credentials redacted",
			MimeType:    "application/json",
		},
		{
			URI:         ResourceToolCatalog,
			Name:        "Tool Catalog",
			Description: "Names and descriptions of every registered tool",
			MimeType:    "application/json",
		},
		{
			URI:         ResourceHealth,
			Name:        "Health Status",
			Description: "Server liveness and uptime",
			MimeType:    "application/json",
		},
	}
}

// Read serves the content of one resource. An unknown URI produces a JSON
// error document as a successful read, so resource browsing never faults the
// connection.
func (r *ResourceRegistry) Read(uri string) ResourceContent {
	var payload interface{}

	switch uri {
	case ResourceAppConfig:
		payload = r.configSnapshot()
	case ResourceToolCatalog:
		payload = r.catalogSnapshot()
	case ResourceHealth:
		payload = r.healthSnapshot()
	default:
		payload = map[string]interface{}{
			"error": fmt.Sprintf("unknown resource: %s", uri),
			"available": []string{
				ResourceAppConfig,
				ResourceToolCatalog,
				ResourceHealth,
			},
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error": "failed to serialize resource: %v"}`, err))
	}

	return ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}
}

// configSnapshot exposes operational settings only. API keys are reported as
// presence flags, never as values.
func (r *ResourceRegistry) configSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"mode":                string(r.config.Mode),
		"max_concurrent":      r.config.MaxConcurrent,
		"timeout_ms":          r.config.TimeoutMS,
		"transport":           r.config.Transport.Type,
		"brave_key_present":   r.config.BraveAPIKey != "",
		"weather_key_present": r.config.OpenWeatherAPIKey != "",
	}
}

func (r *ResourceRegistry) catalogSnapshot() map[string]interface{} {
	defs := r.router.ListAllTools()
	tools := make([]map[string]string, len(defs))
	for i, def := range defs {
		tools[i] = map[string]string{
			"name":        def.Name,
			"description": def.Description,
		}
	}
	return map[string]interface{}{
		"count": len(defs),
		"tools": tools,
	}
}

func (r *ResourceRegistry) healthSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"status":         "ok",
		"started_at":     r.started.UTC().Format(time.RFC3339),
		"uptime_seconds": int(time.Since(r.started).Seconds()),
	}
}
