// Package bridge forwards method calls across realm boundaries.
//
// A caller holds an interface declared in one realm; the object that should
// answer lives in another realm whose types have the same qualified names and
// shapes but different Go identity. A Proxy satisfies the caller's interface
// and forwards each call by method name and structural signature to the
// target, translating arguments and results on the way:
//
//   - platform values (see realm.Classify) cross unchanged, errors included;
//   - enum constants are translated by symbolic name;
//   - domain objects returned by the target are wrapped in fresh proxies;
//   - a single callback argument (action, predicate or transform) is replaced
//     by a function of the target's parameter type that bridges the value the
//     target hands to it before calling the user's function.
//
// Go cannot synthesize interface implementations at run time, so every bridged
// interface needs a forwarding stub registered with Register. Stubs are
// generated by cmd/bridgegen and turn each method call into Invoker.Invoke.
//
// Every domain type met during a call chain resolves into the realm of the
// chain's Anchor, the top-level target. A proxy keeps no state beyond its
// target and anchor and is never cached.
package bridge
