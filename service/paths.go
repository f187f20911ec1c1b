package service

import "strings"

// Registry paths are built by raw segment concatenation. Whatever bytes the
// caller passes as service type or instance id become the node name
// unchanged; lookups must use the exact same strings.

func pathForServiceType(basePath, serviceType string) string {
	return basePath + "/" + serviceType
}

func pathForInstance(basePath, serviceType, instanceID string) string {
	return pathForServiceType(basePath, serviceType) + "/" + instanceID
}

// validateBasePath accepts absolute paths like "/services" or "/a/b" with no
// trailing slash and no empty segments.
func validateBasePath(basePath string) error {
	if basePath == "" || basePath == "/" {
		return NewBadParameterError("base path is required", nil)
	}
	if !strings.HasPrefix(basePath, "/") {
		return NewBadParameterError("base path must start with '/': "+basePath, nil)
	}
	if strings.HasSuffix(basePath, "/") {
		return NewBadParameterError("base path must not end with '/': "+basePath, nil)
	}
	if strings.Contains(basePath, "//") {
		return NewBadParameterError("base path must not contain empty segments: "+basePath, nil)
	}
	return nil
}

// validateSegment rejects names that cannot form a single path segment.
func validateSegment(field, value string) error {
	if value == "" {
		return NewBadParameterError(field+" is required", nil)
	}
	if strings.Contains(value, "/") {
		return NewBadParameterError(field+" must not contain '/': "+value, nil)
	}
	return nil
}
