package webclient

import "github.com/kbukum/webclient/engine"

// Realm is an alias for the engine authentication configuration.
// See engine.Realm for full documentation.
type Realm = engine.Realm

// TLSConfig is an alias for the engine TLS configuration.
type TLSConfig = engine.TLSConfig

// Executor is an alias for the engine callback executor.
type Executor = engine.Executor

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc = engine.ExecutorFunc

// GoExecutor runs each callback on a fresh goroutine.
type GoExecutor = engine.GoExecutor

// SyncExecutor runs each callback inline on the resolving goroutine.
type SyncExecutor = engine.SyncExecutor

// BasicRealm creates a basic auth realm. When preemptive, credentials are
// sent with every request instead of waiting for a challenge.
func BasicRealm(principal, credential string, preemptive bool) *Realm {
	return &Realm{
		Scheme:     engine.SchemeBasic,
		Principal:  principal,
		Credential: credential,
		Preemptive: preemptive,
	}
}

// DigestRealm creates a digest auth realm. When preemptive, the last seen
// challenge is reused to authorize requests up front.
func DigestRealm(principal, credential string, preemptive bool) *Realm {
	return &Realm{
		Scheme:     engine.SchemeDigest,
		Principal:  principal,
		Credential: credential,
		Preemptive: preemptive,
	}
}
