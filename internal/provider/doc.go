// Package provider defines the contract between the reconciliation engine
// and the adapters that actually create and delete resources against a
// backing system. The engine calls an adapter at most once per resource per
// apply attempt; idempotency and retry policy are the adapter's business.
package provider
