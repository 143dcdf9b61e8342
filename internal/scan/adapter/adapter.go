// Package adapter exposes the plugin's stable view of a build scan extension
// owned by the host. The extension is reached through bridge proxies, so the
// host may ship its own copy of the scan API.
//
// Bridge failures raised by a setter or getter panic with the bridge error,
// the way generated stubs do for methods that cannot return one. Only Publish
// returns errors.
package adapter

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/louisbranch/realmbridge/internal/bridge"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
	"github.com/louisbranch/realmbridge/internal/scan/plugin/scanapi"
)

// maxUnwrapDepth bounds how many Unwrap layers are peeled off a target.
const maxUnwrapDepth = 16

// ErrBridgeRequired indicates an adapter requested without a bridge.
var ErrBridgeRequired = errors.New("bridge is required")

// ExtensionAdapter configures a host build scan extension.
type ExtensionAdapter struct {
	ext scanapi.Extension
}

// NewExtensionAdapter bridges target as a build scan extension. Wrappers that
// expose the extension through an Unwrap method are peeled off first. Targets
// that are not extensions fail here with INCOMPATIBLE_TARGET rather than on
// first use.
func NewExtensionAdapter(b *bridge.Bridge, target any) (*ExtensionAdapter, error) {
	if b == nil {
		return nil, ErrBridgeRequired
	}
	unwrapped, err := unwrap(target)
	if err != nil {
		return nil, incompatible(target, err)
	}
	if unwrapped == nil {
		return nil, incompatible(target, errors.New("target is nil"))
	}
	anchor, err := b.AnchorFor(unwrapped)
	if err != nil {
		return nil, incompatible(target, err)
	}
	if err := b.Check(unwrapped, reflect.TypeFor[scanapi.Extension](), anchor); err != nil {
		return nil, incompatible(target, err)
	}
	ext, err := bridge.AsAnchored[scanapi.Extension](b, unwrapped, anchor)
	if err != nil {
		return nil, err
	}
	return &ExtensionAdapter{ext: ext}, nil
}

func unwrap(target any) (any, error) {
	for depth := 0; target != nil; depth++ {
		m := reflect.ValueOf(target).MethodByName("Unwrap")
		if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
			return target, nil
		}
		if depth == maxUnwrapDepth {
			return nil, fmt.Errorf("more than %d wrapper layers", maxUnwrapDepth)
		}
		target = m.Call(nil)[0].Interface()
	}
	return nil, nil
}

func incompatible(target any, cause error) error {
	name := fmt.Sprintf("%T", target)
	return apperrors.WrapWithMetadata(apperrors.CodeIncompatibleTarget,
		name+" is not a build scan extension",
		map[string]string{"target": name},
		cause)
}

// BuildScan returns the scan configuration.
func (a *ExtensionAdapter) BuildScan() *BuildScanAdapter {
	return &BuildScanAdapter{scan: a.ext.BuildScan()}
}

// ConfigureBuildScan runs action against the scan configuration.
func (a *ExtensionAdapter) ConfigureBuildScan(action func(*BuildScanAdapter)) {
	a.ext.ConfigureBuildScan(func(scan scanapi.BuildScan) {
		action(&BuildScanAdapter{scan: scan})
	})
}

func (a *ExtensionAdapter) Server() string { return a.ext.Server() }

func (a *ExtensionAdapter) SetServer(server string) { a.ext.SetServer(server) }

func (a *ExtensionAdapter) ProjectID() string { return a.ext.ProjectID() }

func (a *ExtensionAdapter) SetProjectID(projectID string) { a.ext.SetProjectID(projectID) }

func (a *ExtensionAdapter) AllowUntrustedServer() bool { return a.ext.AllowUntrustedServer() }

func (a *ExtensionAdapter) SetAllowUntrustedServer(allow bool) {
	a.ext.SetAllowUntrustedServer(allow)
}

func (a *ExtensionAdapter) AccessKey() string { return a.ext.AccessKey() }

func (a *ExtensionAdapter) SetAccessKey(accessKey string) { a.ext.SetAccessKey(accessKey) }

// BuildCache returns the remote build cache type, or "" when none is
// configured.
func (a *ExtensionAdapter) BuildCache() string { return a.ext.BuildCache() }
