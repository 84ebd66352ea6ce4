// Package canonical produces RFC 8785 canonical JSON and domain-separated
// SHA-256 fingerprints for contract documents.
//
// Canonical output has no insignificant whitespace, object keys sorted by
// UTF-16 code units, NFC-normalised strings and no HTML escaping. Floats and
// nulls are rejected so that the same contract always hashes the same way
// regardless of which document format it was written in.
package canonical
