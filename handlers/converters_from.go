package handlers

import (
	"net/url"

	"myregistry/service"
)

// fromRegisterRequest validates a register request and parses its optional
// endpoint. The returned URL is nil when the request carries no endpoint.
func fromRegisterRequest(req RegisterRequest) (*url.URL, error) {
	if req.ServiceType == "" {
		return nil, service.NewBadParameterError("service_type is required", nil)
	}
	if req.InstanceID == "" {
		return nil, service.NewBadParameterError("instance_id is required", nil)
	}

	raw := service.Value(req.Endpoint)
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, service.NewBadParameterError("endpoint is not a valid URL: "+raw, err)
	}
	return u, nil
}
