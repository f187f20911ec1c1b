// Package handlers contains http handlers for myregistry.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"

	"myregistry/interfaces"
	"myregistry/service"
)

// HTTPServer exposes a Registry over HTTP. The wire payload type is opaque
// JSON, stored and returned verbatim.
type HTTPServer struct {
	registry interfaces.Registry[json.RawMessage]
	selector *service.Selector[json.RawMessage]
	logger   log.Logger
}

// NewHTTPServer creates a new instance of HTTPServer.
func NewHTTPServer(registry interfaces.Registry[json.RawMessage], logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")

	return &HTTPServer{
		registry: registry,
		selector: &service.Selector[json.RawMessage]{},
		logger:   logger,
	}
}

// RegisterHandlers mounts the v1 routes on e.
func RegisterHandlers(e *echo.Echo, s *HTTPServer) {
	e.POST("/v1/register", s.RegisterInstance)
	e.POST("/v1/unregister/:service_type/:instance_id", s.UnregisterInstance)
	e.GET("/v1/types", s.GetServiceTypes)
	e.GET("/v1/ids/:service_type", s.GetInstanceIDs)
	e.GET("/v1/instances/:service_type", s.GetInstances)
	e.GET("/v1/instances/:service_type/:instance_id", s.GetInstance)
	e.GET("/v1/find/:service_type", s.FindInstances)
	e.GET("/v1/resolve/:service_type", s.ResolveInstance)
	e.GET("/v1/local", s.GetLocalInstances)
}

// RegisterInstance handles POST /v1/register.
func (s *HTTPServer) RegisterInstance(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("failed to bind request", err)
	}

	endpoint, err := fromRegisterRequest(req)
	if err != nil {
		return fmt.Errorf("registerInstance failed to convert request, err: %w", err)
	}

	inst, err := s.registry.Register(ectx.Request().Context(), req.ServiceType, req.InstanceID, endpoint, req.Payload)
	if err != nil {
		return fmt.Errorf("registerInstance failed to register, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstanceInfo(inst))
}

// UnregisterInstance handles POST /v1/unregister/:service_type/:instance_id.
func (s *HTTPServer) UnregisterInstance(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")
	instanceID := ectx.Param("instance_id")

	if err := s.registry.Deregister(ectx.Request().Context(), serviceType, instanceID); err != nil {
		return fmt.Errorf("unregisterInstance failed to deregister, err: %w", err)
	}

	return ectx.NoContent(http.StatusOK)
}

// GetServiceTypes handles GET /v1/types. With ?source=index the answer comes
// from the refreshed index instead of the store.
func (s *HTTPServer) GetServiceTypes(ectx echo.Context) error {
	var (
		types []string
		err   error
	)
	if ectx.QueryParam("source") == "index" {
		types, err = s.registry.IndexedServiceTypes(ectx.Request().Context())
	} else {
		types, err = s.registry.ServiceTypes(ectx.Request().Context())
	}
	if err != nil {
		return fmt.Errorf("getServiceTypes failed to list, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, TypesResponse{Types: types})
}

// GetInstanceIDs handles GET /v1/ids/:service_type.
func (s *HTTPServer) GetInstanceIDs(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")

	ids, err := s.registry.InstanceIDs(ectx.Request().Context(), serviceType)
	if err != nil {
		return fmt.Errorf("getInstanceIDs failed to list, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, InstanceIDsResponse{InstanceIDs: ids})
}

// GetInstances handles GET /v1/instances/:service_type.
func (s *HTTPServer) GetInstances(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")

	instances, err := s.registry.ListInstances(ectx.Request().Context(), serviceType)
	if err != nil {
		return fmt.Errorf("getInstances failed to list, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
}

// GetInstance handles GET /v1/instances/:service_type/:instance_id. A
// missing registration is a 404.
func (s *HTTPServer) GetInstance(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")
	instanceID := ectx.Param("instance_id")

	inst, err := s.registry.QueryForInstance(ectx.Request().Context(), serviceType, instanceID)
	if err != nil {
		return fmt.Errorf("getInstance failed to query, err: %w", err)
	}
	if inst == nil {
		return service.NewEntityNotFoundError(
			fmt.Sprintf("no registration for instance %s of service type %s", instanceID, serviceType), nil)
	}

	return ectx.JSON(http.StatusOK, toInstanceInfo(*inst))
}

// FindInstances handles GET /v1/find/:service_type?name=. Zero matches is a
// 404, unlike the listing endpoints.
func (s *HTTPServer) FindInstances(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")
	name := ectx.QueryParam("name")

	instances, err := s.registry.FindInstances(ectx.Request().Context(), serviceType, name)
	if err != nil {
		return fmt.Errorf("findInstances failed to find, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
}

// ResolveInstance handles GET /v1/resolve/:service_type, answering one
// instance per call in round-robin rotation.
func (s *HTTPServer) ResolveInstance(ectx echo.Context) error {
	serviceType := ectx.Param("service_type")

	instances, err := s.registry.ListInstances(ectx.Request().Context(), serviceType)
	if err != nil {
		return fmt.Errorf("resolveInstance failed to list, err: %w", err)
	}
	inst, err := s.selector.Pick(instances)
	if err != nil {
		return fmt.Errorf("resolveInstance has no candidates for %s, err: %w", serviceType, err)
	}

	return ectx.JSON(http.StatusOK, toInstanceInfo(inst))
}

// GetLocalInstances handles GET /v1/local, reporting what this process has
// registered.
func (s *HTTPServer) GetLocalInstances(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toInstancesResponse(s.registry.LocalInstances()))
}
