package storage

import (
	"context"
	"errors"
	"fmt"
)

// Gateway is the remote asset hosting service as seen by the lifecycle hooks.
// Implementations wrap remote failures in *ServiceError.
type Gateway interface {
	// Upload stores data under a name derived from filename and returns the
	// metadata the service assigned to it.
	Upload(ctx context.Context, data []byte, filename string) (*Asset, error)

	// Delete removes a previously uploaded asset. Only PublicID and
	// ResourceType are read.
	Delete(ctx context.Context, asset *Asset) error
}

var (
	// ErrNotConfigured is returned by the Unconfigured gateway.
	ErrNotConfigured = errors.New("asset gateway not configured")

	// ErrNoAsset reports a gateway that returned neither an asset nor an error.
	ErrNoAsset = errors.New("gateway returned no asset")

	// ErrAssetNotFound reports a delete the remote host could not match.
	ErrAssetNotFound = errors.New("asset not found")
)

// ServiceError reports a failed call against the remote service.
type ServiceError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Unconfigured fails every call with ErrNotConfigured.
type Unconfigured struct{}

var _ Gateway = Unconfigured{}

func (Unconfigured) Upload(context.Context, []byte, string) (*Asset, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Delete(context.Context, *Asset) error {
	return ErrNotConfigured
}
