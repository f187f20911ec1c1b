// Package mock contains hand-maintained test doubles for the interfaces
// package.
package mock

import (
	"context"
	"net/url"

	"myregistry/domain"
	"myregistry/interfaces"
)

// RegistryMock implements interfaces.Registry with per-method overrides.
// Methods whose Func field is left nil return zero values.
type RegistryMock[P any] struct {
	RegisterFunc            func(ctx context.Context, serviceType, instanceID string, endpoint *url.URL, payload P) (domain.Instance[P], error)
	DeregisterFunc          func(ctx context.Context, serviceType, instanceID string) error
	InstanceIDsFunc         func(ctx context.Context, serviceType string) ([]string, error)
	ServiceTypesFunc        func(ctx context.Context) ([]string, error)
	IndexedServiceTypesFunc func(ctx context.Context) ([]string, error)
	QueryForInstanceFunc    func(ctx context.Context, serviceType, instanceID string) (*domain.Instance[P], error)
	ListInstancesFunc       func(ctx context.Context, serviceType string) ([]domain.Instance[P], error)
	FindInstanceFunc        func(ctx context.Context, serviceType, name string) (domain.Instance[P], error)
	FindInstancesFunc       func(ctx context.Context, serviceType, name string) ([]domain.Instance[P], error)
	LocalInstancesFunc      func() []domain.Instance[P]
}

var _ interfaces.Registry[any] = &RegistryMock[any]{}

func (m *RegistryMock[P]) Register(ctx context.Context, serviceType, instanceID string, endpoint *url.URL, payload P) (domain.Instance[P], error) {
	if m.RegisterFunc == nil {
		return domain.Instance[P]{}, nil
	}
	return m.RegisterFunc(ctx, serviceType, instanceID, endpoint, payload)
}

func (m *RegistryMock[P]) Deregister(ctx context.Context, serviceType, instanceID string) error {
	if m.DeregisterFunc == nil {
		return nil
	}
	return m.DeregisterFunc(ctx, serviceType, instanceID)
}

func (m *RegistryMock[P]) InstanceIDs(ctx context.Context, serviceType string) ([]string, error) {
	if m.InstanceIDsFunc == nil {
		return nil, nil
	}
	return m.InstanceIDsFunc(ctx, serviceType)
}

func (m *RegistryMock[P]) ServiceTypes(ctx context.Context) ([]string, error) {
	if m.ServiceTypesFunc == nil {
		return nil, nil
	}
	return m.ServiceTypesFunc(ctx)
}

func (m *RegistryMock[P]) IndexedServiceTypes(ctx context.Context) ([]string, error) {
	if m.IndexedServiceTypesFunc == nil {
		return nil, nil
	}
	return m.IndexedServiceTypesFunc(ctx)
}

func (m *RegistryMock[P]) QueryForInstance(ctx context.Context, serviceType, instanceID string) (*domain.Instance[P], error) {
	if m.QueryForInstanceFunc == nil {
		return nil, nil
	}
	return m.QueryForInstanceFunc(ctx, serviceType, instanceID)
}

func (m *RegistryMock[P]) ListInstances(ctx context.Context, serviceType string) ([]domain.Instance[P], error) {
	if m.ListInstancesFunc == nil {
		return nil, nil
	}
	return m.ListInstancesFunc(ctx, serviceType)
}

func (m *RegistryMock[P]) FindInstance(ctx context.Context, serviceType, name string) (domain.Instance[P], error) {
	if m.FindInstanceFunc == nil {
		return domain.Instance[P]{}, nil
	}
	return m.FindInstanceFunc(ctx, serviceType, name)
}

func (m *RegistryMock[P]) FindInstances(ctx context.Context, serviceType, name string) ([]domain.Instance[P], error) {
	if m.FindInstancesFunc == nil {
		return nil, nil
	}
	return m.FindInstancesFunc(ctx, serviceType, name)
}

func (m *RegistryMock[P]) LocalInstances() []domain.Instance[P] {
	if m.LocalInstancesFunc == nil {
		return nil
	}
	return m.LocalInstancesFunc()
}
