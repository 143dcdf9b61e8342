// Package realmtest holds two structurally identical fixture trees, alpha and
// beta, used as separate realms in tests. Beta declares its Color constants in
// a different order and adds Violet, so enum translation by ordinal or by
// missing name is observable.
package realmtest
