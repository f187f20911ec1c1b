// Package domain contains myregistry domain types.
package domain

import (
	"fmt"
	"time"
)

// Instance is one registered unit of a service type. P is the payload type
// carried verbatim for each instance; the registry core never inspects it.
type Instance[P any] struct {
	// ServiceType groups instances of the same kind of service.
	ServiceType string `json:"service_type"`
	// InstanceID identifies one instance within its service type.
	InstanceID string `json:"instance_id"`
	// Endpoint is where the instance can be reached. Optional.
	Endpoint *Endpoint `json:"endpoint,omitempty"`
	// Payload is opaque caller data stored alongside the registration.
	Payload P `json:"payload"`
	// RegistrationID is a fresh unique id minted for each registration call,
	// including re-registrations of the same instance.
	RegistrationID string `json:"registration_id"`
	// RegistrationTime is when the registration was written, in UTC.
	RegistrationTime time.Time `json:"registration_time"`
}

// Endpoint is the network location of an instance.
type Endpoint struct {
	Scheme string `json:"scheme"`
	Host   string `json:"host"`
	Port   int    `json:"port"`
}

// String renders the endpoint as a URL.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s:%d", e.Scheme, e.Host, e.Port)
}
