// Package event defines the synthetic GitHub activity event model.
package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type represents the type of activity event.
type Type string

const (
	TypeCommit      Type = "commit"
	TypePullRequest Type = "pull_request"
	TypeDeploy      Type = "deploy"
)

// AllTypes returns all supported event types.
func AllTypes() []Type {
	return []Type{TypeCommit, TypePullRequest, TypeDeploy}
}

// OwnerType classifies the account that holds a repository.
type OwnerType string

const (
	OwnerOrganization OwnerType = "organization"
	OwnerUser         OwnerType = "user"
)

// Event is a single synthetic activity event destined for the events table.
// Timestamp and CreatedAt carry second precision; CreatedAt is never earlier
// than Timestamp.
type Event struct {
	ID        string
	Type      Type
	Owner     string
	OwnerType OwnerType
	Repo      string
	Member    string
	Timestamp time.Time
	Payload   Payload
	CreatedAt time.Time
}

// Payload is the type-specific portion of an event. Exactly one concrete
// payload exists per event type.
type Payload interface {
	Kind() Type
}

// CommitPayload carries the commit-specific fields.
type CommitPayload struct {
	SHA          string `json:"sha"`
	Message      string `json:"message"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	FilesChanged int    `json:"files_changed"`
}

// Kind implements Payload.
func (CommitPayload) Kind() Type { return TypeCommit }

// PullRequestPayload carries the pull-request-specific fields.
type PullRequestPayload struct {
	Number       int    `json:"number"`
	Title        string `json:"title"`
	State        string `json:"state"` // open, closed, merged
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	FilesChanged int    `json:"files_changed"`
}

// Kind implements Payload.
func (PullRequestPayload) Kind() Type { return TypePullRequest }

// DeployPayload carries the deployment-specific fields.
type DeployPayload struct {
	ID          string `json:"id"`
	Environment string `json:"environment"` // production, staging, development
	Status      string `json:"status"`      // success, failure, pending
	Ref         string `json:"ref"`
	SHA         string `json:"sha"`
}

// Kind implements Payload.
func (DeployPayload) Kind() Type { return TypeDeploy }

// EncodePayload serializes a payload to the JSON document stored in the
// events table's data column.
func EncodePayload(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s payload: %w", p.Kind(), err)
	}
	return string(b), nil
}

// DecodePayload parses a data column document back into the typed payload
// for the given event type.
func DecodePayload(t Type, data []byte) (Payload, error) {
	switch t {
	case TypeCommit:
		var p CommitPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode commit payload: %w", err)
		}
		return p, nil
	case TypePullRequest:
		var p PullRequestPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode pull_request payload: %w", err)
		}
		return p, nil
	case TypeDeploy:
		var p DeployPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode deploy payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", t)
	}
}
