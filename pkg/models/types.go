package models

import (
	"strings"
	"time"
)

// Metadata is embedded in every API object
type Metadata struct {
	ID      string            `json:"id" yaml:"id"`
	Created time.Time         `json:"created" yaml:"created"`
	Links   map[string]string `json:"links,omitempty" yaml:"links,omitempty"`
}

// RunState is the lifecycle state of a thread's run
type RunState string

const (
	RunStateCreating RunState = "creating"
	RunStateRunning  RunState = "running"
	RunStateWaiting  RunState = "waiting"
	RunStateContinue RunState = "continue"
	RunStateFinished RunState = "finished"
	RunStateError    RunState = "error"
)

// IsTerminal reports whether the run has stopped
func (s RunState) IsTerminal() bool {
	return s == RunStateFinished || s == RunStateError
}

type Thread struct {
	Metadata       `yaml:",inline"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	AgentID        string   `json:"agentID,omitempty" yaml:"agent_id,omitempty"`
	WorkflowID     string   `json:"workflowID,omitempty" yaml:"workflow_id,omitempty"`
	State          RunState `json:"state,omitempty" yaml:"state,omitempty"`
	CurrentRunID   string   `json:"currentRunId,omitempty" yaml:"current_run_id,omitempty"`
	LastRunID      string   `json:"lastRunID,omitempty" yaml:"last_run_id,omitempty"`
	ParentThreadID string   `json:"parentThreadId,omitempty" yaml:"parent_thread_id,omitempty"`
}

// EntityID returns the id of the agent or workflow that owns the thread
func (t Thread) EntityID() string {
	if t.AgentID != "" {
		return t.AgentID
	}
	return t.WorkflowID
}

type Agent struct {
	Metadata    `yaml:",inline"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Workflow struct {
	Metadata    `yaml:",inline"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entity is the agent or workflow a thread belongs to
type Entity struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IsAgent reports whether the entity is an agent. Agent ids carry the "a" prefix,
// workflow ids do not.
func (e Entity) IsAgent() bool {
	return IsAgentID(e.ID)
}

// Kind returns "Agent" or "Workflow"
func (e Entity) Kind() string {
	if e.IsAgent() {
		return "Agent"
	}
	return "Workflow"
}

// Link returns the dashboard path for the entity. Agent links carry the thread
// they were opened from so the editor can navigate back.
func (e Entity) Link(threadID string) string {
	if e.IsAgent() {
		return "/agents/" + e.ID + "?from=/threads/" + threadID
	}
	return "/workflows/" + e.ID
}

func IsAgentID(id string) bool {
	return strings.HasPrefix(id, "a")
}

type File struct {
	Name string `json:"name" yaml:"name"`
}

type KnowledgeFile struct {
	ID              string `json:"id" yaml:"id"`
	FileName        string `json:"fileName" yaml:"file_name"`
	IngestionStatus string `json:"ingestionStatus,omitempty" yaml:"ingestion_status,omitempty"`
}

type Credential struct {
	Name      string     `json:"name" yaml:"name"`
	EnvVars   []string   `json:"envVars,omitempty" yaml:"env_vars,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

type Table struct {
	Name string `json:"name" yaml:"name"`
}

// List is the envelope used by unpaginated list endpoints
type List[T any] struct {
	Items []T `json:"items" yaml:"items"`
}

// Page is one page of a paginated collection. Total counts every item that
// matches the query, not just the ones on this page.
type Page[T any] struct {
	Items []T `json:"items" yaml:"items"`
	Total int `json:"total" yaml:"total"`
}

// ModelProvider is the platform's view of a configured model provider
type ModelProvider struct {
	Metadata                        `yaml:",inline"`
	Name                            string   `json:"name" yaml:"name"`
	Configured                      bool     `json:"configured" yaml:"configured"`
	RequiredConfigurationParameters []string `json:"requiredConfigurationParameters,omitempty" yaml:"required_configuration_parameters,omitempty"`
	MissingConfigurationParameters  []string `json:"missingConfigurationParameters,omitempty" yaml:"missing_configuration_parameters,omitempty"`
}
