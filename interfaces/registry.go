package interfaces

import (
	"context"
	"net/url"

	"myregistry/domain"
)

// Registry is the registration and discovery surface of myregistry.
// P is the payload type instances carry.
type Registry[P any] interface {
	// Register writes an instance record for serviceType/instanceID,
	// replacing any previous registration of the same pair, and remembers
	// it in the local instance cache. endpoint may be nil.
	// Returns the stored instance, or an error:
	// 1) illegal_state if the registry is not started;
	// 2) bad_parameter if serviceType or instanceID is empty or contains '/';
	// 3) invalid_endpoint if the endpoint URL has no scheme or host;
	// 4) io_error for store failures, including an undefined endpoint port.
	Register(ctx context.Context, serviceType, instanceID string, endpoint *url.URL, payload P) (domain.Instance[P], error)

	// Deregister removes the registration for serviceType/instanceID and
	// drops it from the local instance cache. Removing an instance that is
	// not registered is not an error.
	Deregister(ctx context.Context, serviceType, instanceID string) error

	// InstanceIDs lists the instance ids registered under serviceType.
	// A service type nobody has registered yields an empty list, not an
	// error.
	InstanceIDs(ctx context.Context, serviceType string) ([]string, error)

	// ServiceTypes lists the service types present in the store.
	// An empty registry yields an empty list, not an error.
	ServiceTypes(ctx context.Context) ([]string, error)

	// IndexedServiceTypes lists service types as seen by the periodically
	// refreshed index. Same contract as ServiceTypes, but the result may
	// lag the store between refreshes.
	IndexedServiceTypes(ctx context.Context) ([]string, error)

	// QueryForInstance reads one registration.
	// Returns (nil, nil) when no usable record exists, wrapping both the
	// missing-node case and an empty payload blob.
	QueryForInstance(ctx context.Context, serviceType, instanceID string) (*domain.Instance[P], error)

	// ListInstances resolves every registration under serviceType,
	// skipping instances that vanish between the id listing and the read.
	ListInstances(ctx context.Context, serviceType string) ([]domain.Instance[P], error)

	// FindInstance returns the single instance of serviceType whose id is
	// name. Returns entity_not_found if no such instance exists.
	FindInstance(ctx context.Context, serviceType, name string) (domain.Instance[P], error)

	// FindInstances returns the instances of serviceType, narrowed to the
	// one named name when name is non-empty. The result is never empty:
	// zero matches surface as entity_not_found.
	FindInstances(ctx context.Context, serviceType, name string) ([]domain.Instance[P], error)

	// LocalInstances reports the instances this process has registered,
	// from the local cache. The store stays authoritative; entries here
	// can be stale if another party removed them remotely.
	LocalInstances() []domain.Instance[P]
}
