package bridge

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
	"github.com/louisbranch/realmbridge/internal/platform/otel"
)

const instrumentationName = "github.com/louisbranch/realmbridge/internal/bridge"

var (
	// ErrCatalogRequired indicates a bridge built without a catalog.
	ErrCatalogRequired = errors.New("realm catalog is required")
	// ErrStubRequired indicates a nil stub constructor.
	ErrStubRequired = errors.New("stub constructor is required")
	// ErrStubNotInterface indicates a stub registered for a non-interface type.
	ErrStubNotInterface = errors.New("stub type must be an interface")
	// ErrStubAlreadyRegistered indicates a duplicate stub registration.
	ErrStubAlreadyRegistered = errors.New("stub already registered")
)

// Bridge creates proxies over a fixed realm catalog. It is safe for
// concurrent use once its stubs are registered.
type Bridge struct {
	catalog *realm.Catalog
	logger  *log.Logger
	tracer  trace.Tracer

	stubsMu sync.RWMutex
	stubs   map[reflect.Type]func(Invoker) any

	methods sync.Map // methodKey -> *resolvedMethod
	group   singleflight.Group
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger logs each failed crossing at the proxy that observed it.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithTracer records one span per bridged call. By default the tracer comes
// from the global OpenTelemetry provider, which is a no-op until configured.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Bridge) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// New builds a bridge over catalog.
func New(catalog *realm.Catalog, opts ...Option) (*Bridge, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	b := &Bridge{
		catalog: catalog,
		tracer:  otel.Tracer(instrumentationName),
		stubs:   make(map[reflect.Type]func(Invoker) any),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Catalog returns the realms this bridge resolves against.
func (b *Bridge) Catalog() *realm.Catalog {
	return b.catalog
}

// Register installs the forwarding stub for interface T. Generated
// RegisterBridgeStubs functions call it once per interface.
func Register[T any](b *Bridge, stub func(Invoker) T) error {
	if b == nil {
		return ErrCatalogRequired
	}
	if stub == nil {
		return ErrStubRequired
	}
	iface := reflect.TypeFor[T]()
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrStubNotInterface, iface)
	}
	b.stubsMu.Lock()
	defer b.stubsMu.Unlock()
	if _, exists := b.stubs[iface]; exists {
		return fmt.Errorf("%w: %s", ErrStubAlreadyRegistered, iface)
	}
	b.stubs[iface] = func(inv Invoker) any { return stub(inv) }
	return nil
}

func (b *Bridge) stub(iface reflect.Type) (func(Invoker) any, error) {
	b.stubsMu.RLock()
	defer b.stubsMu.RUnlock()
	stub, ok := b.stubs[iface]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeTypeLoad,
			fmt.Sprintf("no proxy stub registered for %s", iface),
			map[string]string{"interface": iface.String()})
	}
	return stub, nil
}

// Anchor is the top-level target of a call chain together with the realm
// every nested domain type resolves into.
type Anchor struct {
	Target any
	Realm  *realm.Realm
}

// AnchorFor anchors target in the realm that declares its type.
func (b *Bridge) AnchorFor(target any) (Anchor, error) {
	r, ok := b.catalog.OwnerOf(target)
	if !ok {
		return Anchor{}, apperrors.Newf(apperrors.CodeTypeLoad, "%T is not owned by any realm", target)
	}
	return Anchor{Target: target, Realm: r}, nil
}

func (b *Bridge) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}
