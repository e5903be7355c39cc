package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

// ErrWitnessFailed appears when the method must be called by a particular
// account but the transaction is not signed by it.
var ErrWitnessFailed = "witness check failed"

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	if !runtime.CheckWitness(caller) {
		panic(ErrWitnessFailed)
	}
}
