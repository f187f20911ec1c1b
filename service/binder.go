// Package service contains the myregistry core: the registration engine,
// its lifecycle, and the error taxonomy shared with the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"myregistry/domain"
	"myregistry/interfaces"
)

// RegistryBinder registers service instances into a tree store and resolves
// them back out. Instances live at basePath/serviceType/instanceID; the
// payload of each node is the codec-encoded Instance record.
//
// The binder must be started before registrations are accepted and stops
// exactly once; see Start and Stop.
type RegistryBinder[P any] struct {
	store    interfaces.TreeStore
	codec    interfaces.Codec[domain.Instance[P]]
	basePath string
	logger   log.Logger

	lifecycle *Lifecycle
	index     *typeIndex
	cache     *instanceCache[P]
}

var _ interfaces.Registry[any] = (*RegistryBinder[any])(nil)

// NewRegistryBinder creates a binder rooted at basePath. refreshInterval
// tunes the service type index; zero selects the default.
func NewRegistryBinder[P any](
	store interfaces.TreeStore,
	codec interfaces.Codec[domain.Instance[P]],
	basePath string,
	refreshInterval time.Duration,
	logger log.Logger,
) (*RegistryBinder[P], error) {
	if store == nil {
		return nil, NewBadParameterError("store is required", nil)
	}
	if codec == nil {
		return nil, NewBadParameterError("codec is required", nil)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := validateBasePath(basePath); err != nil {
		return nil, err
	}

	return &RegistryBinder[P]{
		store:     store,
		codec:     codec,
		basePath:  basePath,
		logger:    log.WithPrefix(logger, "component", "RegistryBinder"),
		lifecycle: NewLifecycle(logger),
		index:     newTypeIndex(store, basePath, refreshInterval, logger),
		cache:     newInstanceCache[P](),
	}, nil
}

// Start opens the store connection and starts the service type index.
// A second Start fails with illegal_state; a Start after Stop fails the
// same way.
func (b *RegistryBinder[P]) Start() error {
	return b.lifecycle.Start(b.store.Start, b.index.Start)
}

// Stop shuts the binder down: the index first, then the store connection.
// Teardown errors are logged, never returned. The local instance cache is
// cleared. Stop is idempotent and leaves the binder permanently STOPPED.
func (b *RegistryBinder[P]) Stop() error {
	b.cache.clear()
	return b.lifecycle.Stop(b.index.Close, b.store.Close)
}

// State reports the binder's lifecycle state.
func (b *RegistryBinder[P]) State() State {
	return b.lifecycle.State()
}

// Register writes an instance record at basePath/serviceType/instanceID,
// replacing any previous registration of that pair, then records it in the
// local cache. Every call mints a fresh registration id.
func (b *RegistryBinder[P]) Register(ctx context.Context, serviceType, instanceID string, endpoint *url.URL, payload P) (domain.Instance[P], error) {
	var zero domain.Instance[P]

	if err := b.lifecycle.RequireStarted(); err != nil {
		return zero, err
	}
	if err := validateSegment("service_type", serviceType); err != nil {
		return zero, err
	}
	if err := validateSegment("instance_id", instanceID); err != nil {
		return zero, err
	}
	ep, err := endpointFromURL(endpoint)
	if err != nil {
		return zero, err
	}

	inst := domain.Instance[P]{
		ServiceType:      serviceType,
		InstanceID:       instanceID,
		Endpoint:         ep,
		Payload:          payload,
		RegistrationID:   uuid.NewString(),
		RegistrationTime: time.Now().UTC(),
	}
	data, err := b.codec.Marshal(inst)
	if err != nil {
		return zero, NewIOError("cannot serialize instance "+instanceID, err)
	}

	path := pathForInstance(b.basePath, serviceType, instanceID)
	if err := b.store.Write(ctx, path, data); err != nil {
		return zero, NewIOError("cannot register instance at "+path, err)
	}

	// The cache entry is written only after the store acknowledged, so a
	// failed registration never shows up in LocalInstances.
	b.cache.put(inst)
	b.index.note(serviceType)

	level.Info(b.logger).Log(
		"msg", "registered instance",
		"service_type", serviceType,
		"instance_id", instanceID,
		"registration_id", inst.RegistrationID,
	)
	return inst, nil
}

// Deregister removes the registration for serviceType/instanceID and drops
// the local cache entry. An instance that was never registered, or has
// already been removed, deregisters without error.
func (b *RegistryBinder[P]) Deregister(ctx context.Context, serviceType, instanceID string) error {
	if err := b.lifecycle.RequireStarted(); err != nil {
		return err
	}
	if err := validateSegment("service_type", serviceType); err != nil {
		return err
	}
	if err := validateSegment("instance_id", instanceID); err != nil {
		return err
	}

	path := pathForInstance(b.basePath, serviceType, instanceID)
	if err := b.store.Delete(ctx, path); err != nil && !errors.Is(err, interfaces.ErrNoNode) {
		return NewIOError("cannot deregister instance at "+path, err)
	}
	b.cache.remove(instanceID)

	level.Info(b.logger).Log(
		"msg", "deregistered instance",
		"service_type", serviceType,
		"instance_id", instanceID,
	)
	return nil
}

// InstanceIDs lists the instance ids registered under serviceType. A type
// with no registrations yields an empty list, not an error.
func (b *RegistryBinder[P]) InstanceIDs(ctx context.Context, serviceType string) ([]string, error) {
	if err := validateSegment("service_type", serviceType); err != nil {
		return nil, err
	}

	ids, err := b.store.ListChildren(ctx, pathForServiceType(b.basePath, serviceType))
	if errors.Is(err, interfaces.ErrNoNode) {
		return []string{}, nil
	}
	if err != nil {
		return nil, NewIOError("cannot list instances of "+serviceType, err)
	}
	return ids, nil
}

// ServiceTypes lists the service types present under the base path, straight
// from the store. An empty registry yields an empty list, not an error.
func (b *RegistryBinder[P]) ServiceTypes(ctx context.Context) ([]string, error) {
	types, err := b.store.ListChildren(ctx, b.basePath)
	if errors.Is(err, interfaces.ErrNoNode) {
		return []string{}, nil
	}
	if err != nil {
		return nil, NewIOError("cannot list service types", err)
	}
	return types, nil
}

// IndexedServiceTypes lists service types from the refreshed index instead
// of the store. Same contract as ServiceTypes, cheaper to call, and possibly
// stale by up to one refresh interval.
func (b *RegistryBinder[P]) IndexedServiceTypes(ctx context.Context) ([]string, error) {
	types, err := b.index.ServiceTypes()
	if err != nil {
		return nil, NewIOError("cannot query service type index", err)
	}
	return types, nil
}

// QueryForInstance reads the registration for serviceType/instanceID.
// A missing node and a node holding an empty blob both come back as
// (nil, nil): no usable record.
func (b *RegistryBinder[P]) QueryForInstance(ctx context.Context, serviceType, instanceID string) (*domain.Instance[P], error) {
	if err := validateSegment("service_type", serviceType); err != nil {
		return nil, err
	}
	if err := validateSegment("instance_id", instanceID); err != nil {
		return nil, err
	}

	path := pathForInstance(b.basePath, serviceType, instanceID)
	data, err := b.store.Read(ctx, path)
	if errors.Is(err, interfaces.ErrNoNode) {
		return nil, nil
	}
	if err != nil {
		return nil, NewIOError("cannot read instance at "+path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	inst, err := b.codec.Unmarshal(data)
	if err != nil {
		return nil, NewIOError("cannot deserialize instance at "+path, err)
	}
	return &inst, nil
}

// ListInstances resolves every registration under serviceType. Instances
// that vanish between the id listing and the point read are skipped rather
// than failing the whole listing.
func (b *RegistryBinder[P]) ListInstances(ctx context.Context, serviceType string) ([]domain.Instance[P], error) {
	ids, err := b.InstanceIDs(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	instances := make([]domain.Instance[P], 0, len(ids))
	for _, id := range ids {
		inst, err := b.QueryForInstance(ctx, serviceType, id)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			continue
		}
		instances = append(instances, *inst)
	}
	return instances, nil
}

// FindInstance returns the single instance of serviceType whose id is name.
func (b *RegistryBinder[P]) FindInstance(ctx context.Context, serviceType, name string) (domain.Instance[P], error) {
	var zero domain.Instance[P]

	if name == "" {
		return zero, NewBadParameterError("name is required", nil)
	}
	instances, err := b.FindInstances(ctx, serviceType, name)
	if err != nil {
		return zero, err
	}
	return instances[0], nil
}

// FindInstances returns the instances of serviceType, narrowed to the one
// named name when name is non-empty. Unlike ListInstances it never returns
// an empty result: zero matches is an entity_not_found error naming what
// was asked for.
func (b *RegistryBinder[P]) FindInstances(ctx context.Context, serviceType, name string) ([]domain.Instance[P], error) {
	instances, err := b.ListInstances(ctx, serviceType)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, NewEntityNotFoundError("no registry entries for service type "+serviceType, nil)
	}
	if name == "" {
		return instances, nil
	}
	for _, inst := range instances {
		if inst.InstanceID == name {
			return []domain.Instance[P]{inst}, nil
		}
	}
	return nil, NewEntityNotFoundError(
		fmt.Sprintf("no registry entries for service name %s and service type %s", name, serviceType), nil)
}

// LocalInstances reports the instances this process has registered since it
// started, newest registration per instance id, sorted by instance id.
func (b *RegistryBinder[P]) LocalInstances() []domain.Instance[P] {
	return b.cache.snapshot()
}

// endpointFromURL validates a registration endpoint. A nil URL means the
// instance has no endpoint. A URL without a usable port is refused the same
// way store failures are, wrapping ErrPortUndefined.
func endpointFromURL(u *url.URL) (*domain.Endpoint, error) {
	if u == nil {
		return nil, nil
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return nil, NewInvalidEndpointError("endpoint needs a scheme and host: "+u.String(), nil)
	}

	portStr := u.Port()
	if portStr == "" {
		return nil, NewIOError("port undefined in "+u.String(), ErrPortUndefined)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, NewInvalidEndpointError("endpoint port is not numeric: "+u.String(), err)
	}
	if port == 0 {
		return nil, NewIOError("port undefined in "+u.String(), ErrPortUndefined)
	}

	return &domain.Endpoint{Scheme: u.Scheme, Host: u.Hostname(), Port: port}, nil
}
