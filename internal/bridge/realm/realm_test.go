package realm

import (
	"errors"
	"reflect"
	"testing"

	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
	beta "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta/palette"
)

func TestNewRequiresNameAndRoot(t *testing.T) {
	if _, err := New(" ", alphaRoot); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := New("alpha", ""); !errors.Is(err, ErrRootRequired) {
		t.Fatalf("expected ErrRootRequired, got %v", err)
	}
}

func TestNewCleansRoot(t *testing.T) {
	r, err := New("alpha", alphaRoot+"/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Root() != alphaRoot {
		t.Fatalf("root = %q, want %q", r.Root(), alphaRoot)
	}
}

func TestContainsRespectsPathBoundaries(t *testing.T) {
	r, err := New("alpha", alphaRoot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tests := []struct {
		pkg  string
		want bool
	}{
		{alphaRoot, true},
		{alphaRoot + "/palette", true},
		{alphaRoot + "beta", false},
		{"fmt", false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.pkg); got != tc.want {
			t.Fatalf("Contains(%q) = %v, want %v", tc.pkg, got, tc.want)
		}
	}
}

func TestQualifiedNameIsRelativeToRoot(t *testing.T) {
	a := newAlphaRealm(t)
	name, err := a.QualifiedName(reflect.TypeFor[alpha.Swatch]())
	if err != nil {
		t.Fatalf("qualified name: %v", err)
	}
	if name != "palette.Swatch" {
		t.Fatalf("name = %q, want palette.Swatch", name)
	}
}

func TestRegisterRejectsForeignAndUnnamedTypes(t *testing.T) {
	r, err := New("alpha", alphaRoot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := r.Register(reflect.TypeFor[beta.Swatch]()); !errors.Is(err, ErrTypeOutsideRoot) {
		t.Fatalf("expected ErrTypeOutsideRoot, got %v", err)
	}
	if err := r.Register(reflect.TypeFor[*alpha.Sample]()); !errors.Is(err, ErrTypeUnnamed) {
		t.Fatalf("expected ErrTypeUnnamed, got %v", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("expected ErrTypeRequired, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := newAlphaRealm(t)
	if err := r.Register(reflect.TypeFor[alpha.Swatch]()); !errors.Is(err, ErrTypeAlreadyRegistered) {
		t.Fatalf("expected ErrTypeAlreadyRegistered, got %v", err)
	}
	if err := r.RegisterEnum(alpha.Red); !errors.Is(err, ErrTypeAlreadyRegistered) {
		t.Fatalf("expected ErrTypeAlreadyRegistered for enum, got %v", err)
	}
}

func TestRegisterEnumValidatesConstants(t *testing.T) {
	r, err := New("alpha", alphaRoot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := r.RegisterEnum(); !errors.Is(err, ErrEnumEmpty) {
		t.Fatalf("expected ErrEnumEmpty, got %v", err)
	}
	if err := r.RegisterEnum(alpha.Red, alpha.Light); !errors.Is(err, ErrEnumMixedTypes) {
		t.Fatalf("expected ErrEnumMixedTypes, got %v", err)
	}
	if err := r.RegisterEnum(alpha.Red, alpha.Red); !errors.Is(err, ErrEnumDuplicateConstant) {
		t.Fatalf("expected ErrEnumDuplicateConstant, got %v", err)
	}
	if err := r.RegisterEnum(alpha.Sample{}); !errors.Is(err, ErrEnumUnnamedConstant) {
		t.Fatalf("expected ErrEnumUnnamedConstant, got %v", err)
	}
}

func TestLookupMissingTypeIsTypeLoadError(t *testing.T) {
	r := newAlphaRealm(t)
	got, err := r.Lookup("palette.Swatch")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != reflect.TypeFor[alpha.Swatch]() {
		t.Fatalf("lookup returned %s", got)
	}
	if _, err := r.Lookup("palette.Missing"); !errors.Is(err, ErrTypeLoad) {
		t.Fatalf("expected ErrTypeLoad, got %v", err)
	}
	if _, err := r.Enum("palette.Swatch"); !errors.Is(err, ErrTypeLoad) {
		t.Fatalf("expected ErrTypeLoad for non-enum, got %v", err)
	}
}

func TestEnumNamesKeepRegistrationOrder(t *testing.T) {
	r := newBetaRealm(t)
	enum, err := r.Enum("palette.Color")
	if err != nil {
		t.Fatalf("enum: %v", err)
	}
	want := []string{"BLUE", "GREEN", "RED", "VIOLET"}
	if got := enum.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if _, ok := enum.NameOf(reflect.ValueOf(beta.Color(42))); ok {
		t.Fatal("unregistered value should have no name")
	}
}

func TestSealedRealmRejectsRegistration(t *testing.T) {
	a := newAlphaRealm(t)
	if _, err := NewCatalog(a); err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if err := a.Register(reflect.TypeFor[alpha.Shade]()); !errors.Is(err, ErrRealmSealed) {
		t.Fatalf("expected ErrRealmSealed, got %v", err)
	}
	if err := a.RegisterEnum(alpha.Light); !errors.Is(err, ErrRealmSealed) {
		t.Fatalf("expected ErrRealmSealed for enum, got %v", err)
	}
}
