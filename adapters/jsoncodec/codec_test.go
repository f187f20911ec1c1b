package jsoncodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myregistry/domain"
)

func TestCodec_InstanceRoundTrip(t *testing.T) {
	codec := New[domain.Instance[map[string]string]]()

	inst := domain.Instance[map[string]string]{
		ServiceType: "webapp",
		InstanceID:  "host-1",
		Endpoint:    &domain.Endpoint{Scheme: "https", Host: "10.0.0.5", Port: 8443},
		Payload:     map[string]string{"zone": "eu-1"},

		RegistrationID:   "b8e2c7aa-0000-4000-8000-000000000001",
		RegistrationTime: time.Date(2026, 8, 21, 10, 30, 0, 123456789, time.UTC),
	}

	data, err := codec.Marshal(inst)
	require.NoError(t, err)

	got, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, inst.ServiceType, got.ServiceType)
	assert.Equal(t, inst.InstanceID, got.InstanceID)
	assert.Equal(t, inst.Endpoint, got.Endpoint)
	assert.Equal(t, inst.Payload, got.Payload)
	assert.Equal(t, inst.RegistrationID, got.RegistrationID)
	assert.True(t, inst.RegistrationTime.Equal(got.RegistrationTime))
}

func TestCodec_NilEndpointStaysNil(t *testing.T) {
	codec := New[domain.Instance[struct{}]]()

	data, err := codec.Marshal(domain.Instance[struct{}]{InstanceID: "host-1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "endpoint")

	got, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, got.Endpoint)
}

func TestCodec_UnmarshalGarbageFails(t *testing.T) {
	codec := New[domain.Instance[struct{}]]()

	_, err := codec.Unmarshal([]byte("{broken"))
	assert.Error(t, err)
}
