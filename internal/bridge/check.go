package bridge

import (
	"fmt"
	"reflect"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

// Check resolves every method of iface against target without calling any of
// them. The first failure is reported as INCOMPATIBLE_TARGET with the
// resolution failure as its cause.
func (b *Bridge) Check(target any, iface reflect.Type, anchor Anchor) error {
	if target == nil {
		return apperrors.New(apperrors.CodeIncompatibleTarget, "target is required")
	}
	if anchor.Realm == nil {
		return fmt.Errorf("anchor: %w", realm.ErrRealmRequired)
	}
	if iface == nil || iface.Kind() != reflect.Interface {
		return apperrors.Newf(apperrors.CodeTypeLoad, "cannot check %T against non-interface type %v", target, iface)
	}
	t := reflect.TypeOf(target)
	for i := range iface.NumMethod() {
		m := iface.Method(i)
		if _, err := b.resolve(t, iface, m, anchor.Realm); err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeIncompatibleTarget,
				fmt.Sprintf("%s is not compatible with %s", t, iface),
				map[string]string{
					"target":    t.String(),
					"interface": iface.String(),
					"method":    m.Name,
					"realm":     anchor.Realm.Name(),
				},
				err)
		}
	}
	return nil
}
