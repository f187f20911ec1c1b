package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathForServiceType(t *testing.T) {
	assert.Equal(t, "/services/webapp", pathForServiceType("/services", "webapp"))
}

func TestPathForInstance(t *testing.T) {
	assert.Equal(t, "/services/webapp/host-1", pathForInstance("/services", "webapp", "host-1"))
}

func TestPaths_NoNormalization(t *testing.T) {
	// Names are taken byte for byte; differently-cased ids are different nodes.
	assert.NotEqual(t,
		pathForInstance("/services", "webapp", "Host-1"),
		pathForInstance("/services", "webapp", "host-1"))
	assert.Equal(t, "/services/web app/id 1", pathForInstance("/services", "web app", "id 1"))
}

func TestValidateBasePath(t *testing.T) {
	tests := []struct {
		name     string
		basePath string
		wantErr  bool
	}{
		{name: "simple", basePath: "/services"},
		{name: "nested", basePath: "/org/prod/services"},
		{name: "empty", basePath: "", wantErr: true},
		{name: "root only", basePath: "/", wantErr: true},
		{name: "relative", basePath: "services", wantErr: true},
		{name: "trailing slash", basePath: "/services/", wantErr: true},
		{name: "empty segment", basePath: "/a//b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBasePath(tt.basePath)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsBadParameterError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateSegment(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "ok", value: "webapp"},
		{name: "spaces ok", value: "web app"},
		{name: "empty", value: "", wantErr: "service_type is required"},
		{name: "slash", value: "a/b", wantErr: "must not contain '/'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSegment("service_type", tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsBadParameterError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
