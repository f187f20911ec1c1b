package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myregistry/service"
)

func TestFromRegisterRequest(t *testing.T) {
	tests := []struct {
		name          string
		request       RegisterRequest
		expectedURL   string
		expectNilURL  bool
		expectedError string
	}{
		{
			name: "valid with endpoint",
			request: RegisterRequest{
				ServiceType: "webapp",
				InstanceID:  "host-1",
				Endpoint:    service.Ptr("http://10.0.0.5:8080"),
			},
			expectedURL: "http://10.0.0.5:8080",
		},
		{
			name: "valid without endpoint",
			request: RegisterRequest{
				ServiceType: "webapp",
				InstanceID:  "host-1",
			},
			expectNilURL: true,
		},
		{
			name: "empty endpoint string means none",
			request: RegisterRequest{
				ServiceType: "webapp",
				InstanceID:  "host-1",
				Endpoint:    service.Ptr(""),
			},
			expectNilURL: true,
		},
		{
			name: "empty service_type",
			request: RegisterRequest{
				ServiceType: "",
				InstanceID:  "host-1",
			},
			expectedError: "service_type is required",
		},
		{
			name: "empty instance_id",
			request: RegisterRequest{
				ServiceType: "webapp",
				InstanceID:  "",
			},
			expectedError: "instance_id is required",
		},
		{
			name: "unparseable endpoint",
			request: RegisterRequest{
				ServiceType: "webapp",
				InstanceID:  "host-1",
				Endpoint:    service.Ptr("http://bad url with spaces:80"),
			},
			expectedError: "endpoint is not a valid URL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromRegisterRequest(tt.request)
			if tt.expectedError != "" {
				require.Error(t, err)
				myErr := service.ToMyError(err)
				require.NotNil(t, myErr)
				assert.Equal(t, service.ErrBadParameter, myErr.Code)
				assert.Contains(t, myErr.Message, tt.expectedError)
				return
			}
			require.NoError(t, err)
			if tt.expectNilURL {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.expectedURL, got.String())
		})
	}
}
