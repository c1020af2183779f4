// Package gate provides the capability gates consumed by the retryer
// package: attention gates (is the consumer's context engaged) and progress
// gates (do connectivity or other environmental conditions permit work).
//
// Hosts typically keep one Manual gate per concern and flip it as the
// environment changes, using Bind to forward a permitting transition into a
// running retryer's Continue:
//
//	online := gate.NewManual(true)
//	unbind := gate.Bind(online, r.Continue)
//	defer unbind()
//
// Static is a fixed gate, useful for tests and for hosts without the
// corresponding signal.
package gate
