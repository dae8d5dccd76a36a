// Package domain holds DTOs for roast http and service contracts
package domain

import "time"

// AnalyzeInput asks for a roast of one GitHub user
type AnalyzeInput struct {
	Username string `json:"username" validate:"required,max=39,ghlogin" example:"octocat"`
	// Force skips the cache lookup, the fresh report still refreshes the cache
	Force bool `json:"force" example:"false"`
	// IncludeAnalysis keeps the evidence maps on every roast
	IncludeAnalysis bool `json:"include_analysis" example:"true"`
}

// GitHub API reachability states
const (
	GitHubConnected    = "connected"
	GitHubRateLimited  = "rate_limited"
	GitHubDisconnected = "disconnected"
)

// Overall health states
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// RateLimitInfo is the remaining core quota
type RateLimitInfo struct {
	Remaining int       `json:"remaining" example:"4999"`
	Limit     int       `json:"limit"     example:"5000"`
	Reset     time.Time `json:"reset"     example:"2025-09-03T14:00:00Z"`
}

// GitHubStatus reports how the GitHub API answered the health check
type GitHubStatus struct {
	Status    string         `json:"status" example:"connected"`
	RateLimit *RateLimitInfo `json:"rate_limit,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// HealthReport is the service health payload
type HealthReport struct {
	Status    string       `json:"status"    example:"ok"`
	Timestamp time.Time    `json:"timestamp" example:"2025-09-03T13:05:00Z"`
	GitHubAPI GitHubStatus `json:"github_api"`
}

// ServiceInfo describes the API at the root path
type ServiceInfo struct {
	Name        string `json:"name"        example:"gitrekt"`
	Version     string `json:"version"     example:"1.0.0"`
	Description string `json:"description" example:"GitHub Roaster API"`
	Docs        string `json:"docs"        example:"/api/v1/health"`
}
