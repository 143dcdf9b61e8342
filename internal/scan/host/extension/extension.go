// Package extension is the host's build scan extension. Its types are
// unexported; plugins reach them only through the scanapi interfaces.
package extension

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
)

// DefaultServer receives scans when no server is configured.
const DefaultServer = "https://scans.gradle.com"

var (
	// ErrTermsNotAccepted indicates publishing to the public server without
	// agreeing to its terms of use.
	ErrTermsNotAccepted = errors.New("terms of use not accepted")
	// ErrUntrustedServer indicates a plain http server without
	// AllowUntrustedServer.
	ErrUntrustedServer = errors.New("untrusted server")
	// ErrNotHostExtension indicates a value not created by New.
	ErrNotHostExtension = errors.New("not a host build scan extension")
)

type extension struct {
	mu             sync.Mutex
	server         string
	projectID      string
	accessKey      string
	allowUntrusted bool
	buildCache     string

	scan *buildScan
}

// New returns an extension with an empty scan configuration. buildCache names
// the remote build cache type, or "" for none.
func New(buildCache string) scanapi.Extension {
	e := &extension{buildCache: buildCache}
	e.scan = newBuildScan(e)
	return e
}

func (e *extension) BuildScan() scanapi.BuildScan { return e.scan }

func (e *extension) ConfigureBuildScan(action func(scanapi.BuildScan)) {
	action(e.scan)
}

func (e *extension) Server() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.server
}

func (e *extension) SetServer(server string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.server = server
}

func (e *extension) ProjectID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.projectID
}

func (e *extension) SetProjectID(projectID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.projectID = projectID
}

func (e *extension) AllowUntrustedServer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allowUntrusted
}

func (e *extension) SetAllowUntrustedServer(allow bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.allowUntrusted = allow
}

func (e *extension) AccessKey() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accessKey
}

func (e *extension) SetAccessKey(accessKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accessKey = accessKey
}

func (e *extension) BuildCache() string { return e.buildCache }

// endpoint returns the server scans are published to.
func (e *extension) endpoint() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	server := strings.TrimSuffix(e.server, "/")
	if server == "" {
		return DefaultServer, nil
	}
	if strings.HasPrefix(server, "http://") && !e.allowUntrusted {
		return "", fmt.Errorf("%w: %s", ErrUntrustedServer, server)
	}
	return server, nil
}

type hiddenFeatures struct {
	scanapi.Extension
}

// WithHiddenFeatures layers the host's internal extension over ext, as the
// host does before handing its extension to plugins.
func WithHiddenFeatures(ext scanapi.Extension) scanapi.Extension {
	return &hiddenFeatures{Extension: ext}
}

// Unwrap returns the decorated extension.
func (h *hiddenFeatures) Unwrap() scanapi.Extension { return h.Extension }

func unwrapHost(ext scanapi.Extension) (*extension, error) {
	for {
		switch typed := ext.(type) {
		case *extension:
			return typed, nil
		case *hiddenFeatures:
			ext = typed.Extension
		default:
			return nil, fmt.Errorf("%w: %T", ErrNotHostExtension, ext)
		}
	}
}
