// Package scan wires the plugin and host copies of the build scan API into one
// bridge.
package scan

import (
	"fmt"

	"github.com/louisbranch/realmbridge/internal/bridge"
	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	hostapi "github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
	pluginapi "github.com/louisbranch/realmbridge/internal/scan/plugin/scanapi"
)

// Realm names and package roots.
const (
	PluginRealm = "plugin"
	HostRealm   = "host"

	PluginRoot = "github.com/louisbranch/realmbridge/internal/scan/plugin"
	HostRoot   = "github.com/louisbranch/realmbridge/internal/scan/host"
)

// NewPluginRealm returns the realm of the plugin's scan API.
func NewPluginRealm() (*realm.Realm, error) {
	r, err := realm.New(PluginRealm, PluginRoot)
	if err != nil {
		return nil, err
	}
	if err := pluginapi.RegisterRealmTypes(r); err != nil {
		return nil, fmt.Errorf("register plugin types: %w", err)
	}
	return r, nil
}

// NewHostRealm returns the realm of the host's scan API.
func NewHostRealm() (*realm.Realm, error) {
	r, err := realm.New(HostRealm, HostRoot)
	if err != nil {
		return nil, err
	}
	if err := hostapi.RegisterRealmTypes(r); err != nil {
		return nil, fmt.Errorf("register host types: %w", err)
	}
	return r, nil
}

// NewCatalog returns a catalog holding the plugin and host realms.
func NewCatalog() (*realm.Catalog, error) {
	plugin, err := NewPluginRealm()
	if err != nil {
		return nil, err
	}
	host, err := NewHostRealm()
	if err != nil {
		return nil, err
	}
	return realm.NewCatalog(plugin, host)
}

// NewBridge returns a bridge over NewCatalog with stubs for both API copies,
// so calls may cross in either direction.
func NewBridge(opts ...bridge.Option) (*bridge.Bridge, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	b, err := bridge.New(catalog, opts...)
	if err != nil {
		return nil, err
	}
	if err := pluginapi.RegisterBridgeStubs(b); err != nil {
		return nil, fmt.Errorf("register plugin stubs: %w", err)
	}
	if err := hostapi.RegisterBridgeStubs(b); err != nil {
		return nil, fmt.Errorf("register host stubs: %w", err)
	}
	return b, nil
}
