package handlers

import (
	"encoding/json"

	"myregistry/domain"
	"myregistry/service"
)

// toInstanceInfo converts a domain instance to its API form.
func toInstanceInfo(inst domain.Instance[json.RawMessage]) InstanceInfo {
	info := InstanceInfo{
		ServiceType:      inst.ServiceType,
		InstanceID:       inst.InstanceID,
		Payload:          inst.Payload,
		RegistrationID:   inst.RegistrationID,
		RegistrationTime: inst.RegistrationTime,
	}
	if inst.Endpoint != nil {
		info.Endpoint = service.Ptr(inst.Endpoint.String())
	}
	return info
}

// toInstancesResponse converts a listing, keeping an empty (not null) slice
// for zero instances.
func toInstancesResponse(instances []domain.Instance[json.RawMessage]) InstancesResponse {
	out := make([]InstanceInfo, 0, len(instances))
	for _, inst := range instances {
		out = append(out, toInstanceInfo(inst))
	}
	return InstancesResponse{Instances: out}
}
