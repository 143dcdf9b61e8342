// Package realm models type-loading boundaries for the bridge.
//
// A Realm is a package-path root together with a registry of the domain types
// declared beneath it. Two realms may each declare a type with the same
// qualified name (package path relative to the root, a dot, the type name)
// and the same shape; Go treats them as distinct types, so values of one
// cannot be used where the other is expected without translation.
//
// A Catalog is the immutable set of realms known to a process. It answers
// which realm owns a type, classifies types as platform, domain enum or domain
// object, translates types between realms by qualified name, and adapts enum
// constants by symbolic name.
//
// Realms are mutable only until they are placed in a Catalog; NewCatalog seals
// them so classification results can be cached safely.
package realm
