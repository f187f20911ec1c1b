package handlers

import (
	"encoding/json"
	"time"
)

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	ServiceType string `json:"service_type"`
	InstanceID  string `json:"instance_id"`
	// Endpoint is an optional URL with scheme, host and port.
	Endpoint *string `json:"endpoint,omitempty"`
	// Payload is opaque JSON stored with the registration and returned
	// verbatim on reads.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// InstanceInfo is the API form of one registered instance.
type InstanceInfo struct {
	ServiceType      string          `json:"service_type"`
	InstanceID       string          `json:"instance_id"`
	Endpoint         *string         `json:"endpoint,omitempty"`
	Payload          json.RawMessage `json:"payload,omitempty"`
	RegistrationID   string          `json:"registration_id"`
	RegistrationTime time.Time       `json:"registration_time"`
}

// InstancesResponse lists instances of one service type.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

// TypesResponse lists known service types.
type TypesResponse struct {
	Types []string `json:"types"`
}

// InstanceIDsResponse lists the instance ids of one service type.
type InstanceIDsResponse struct {
	InstanceIDs []string `json:"instance_ids"`
}
