// Package memory holds process-local repositories used for local runs
// (STORE_BACKEND=memory) and tests. Each repository guards its map with a
// mutex so compare-and-set behaves like the conditional writes of the
// persistent backends.
package memory
