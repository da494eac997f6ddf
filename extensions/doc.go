// Package extensions reads live pool and position state from the
// chain. The lens computes storage slots locally and reads them
// through the pool manager's extsload, so no auxiliary contract
// deployment is needed.
package extensions
