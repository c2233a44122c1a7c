package signal

import "github.com/triage-run/faultline/taxonomy"

// DefaultTable returns the built-in evidence table. Weights range 0.5-0.9
// per signal; strongly diagnostic phrases ("failed host lookup", "no space
// left") weigh more than generic words ("network", "memory").
func DefaultTable() *Table {
	t := NewTable()

	registerNetworkSignals(t)
	registerAuthenticationSignals(t)
	registerValidationSignals(t)
	registerMemorySignals(t)
	registerStorageSignals(t)
	registerTimeoutSignals(t)
	registerPermissionSignals(t)
	registerRateLimitSignals(t)
	registerSecuritySignals(t)
	registerUISignals(t)
	registerDataCorruptionSignals(t)

	// CategoryGeneral intentionally has no evidence sources: it is the
	// classifier's fallback, never a winner on its own.
	return t
}

func registerNetworkSignals(t *Table) {
	cat := taxonomy.CategoryNetwork
	t.AddKeyword(cat, "socketexception", 0.6)
	t.AddKeyword(cat, "failed host lookup", 0.7)
	t.AddKeyword(cat, "connection refused", 0.7)
	t.AddKeyword(cat, "connection reset", 0.7)
	t.AddKeyword(cat, "network is unreachable", 0.7)
	t.AddKeyword(cat, "no route to host", 0.7)
	t.AddKeyword(cat, "name resolution", 0.6)
	t.AddKeyword(cat, "no internet", 0.8)
	t.AddKeyword(cat, "broken pipe", 0.6)
	t.AddKeyword(cat, "dns", 0.5)
	t.AddKeyword(cat, "network", 0.5)
	t.AddContextSignal(cat, ContextSignal{Key: "isOnline", Weight: 0.9, Bool: boolPtr(false)})
	t.AddContextSignal(cat, ContextSignal{Key: "connectionType", Weight: 0.8, Values: []string{"none"}})
}

func registerAuthenticationSignals(t *Table) {
	cat := taxonomy.CategoryAuthentication
	t.AddKeyword(cat, "authentication failed", 0.8)
	t.AddKeyword(cat, "invalid credentials", 0.8)
	t.AddKeyword(cat, "unauthorized", 0.7)
	t.AddKeyword(cat, "invalid token", 0.7)
	t.AddKeyword(cat, "token expired", 0.7)
	t.AddKeyword(cat, "session expired", 0.7)
	t.AddKeyword(cat, "login failed", 0.7)
	t.AddKeyword(cat, "not authenticated", 0.7)
	t.AddKeyword(cat, "401", 0.6)
	t.AddKeyword(cat, "jwt", 0.5)
	t.AddContextSignal(cat, ContextSignal{Key: "tokenExpired", Weight: 0.9, Bool: boolPtr(true)})
	t.AddContextSignal(cat, ContextSignal{Key: "authState", Weight: 0.8, Values: []string{"expired", "unauthenticated"}})
}

func registerValidationSignals(t *Table) {
	cat := taxonomy.CategoryValidation
	t.AddKeyword(cat, "validation failed", 0.8)
	t.AddKeyword(cat, "failed to validate", 0.7)
	t.AddKeyword(cat, "invalid input", 0.7)
	t.AddKeyword(cat, "invalid format", 0.7)
	t.AddKeyword(cat, "required field", 0.7)
	t.AddKeyword(cat, "must not be empty", 0.7)
	t.AddKeyword(cat, "out of range", 0.6)
	t.AddKeyword(cat, "malformed request", 0.6)
	t.AddContextSignal(cat, ContextSignal{Key: "fieldErrors", Weight: 0.7, AtLeast: floatPtr(1)})
}

func registerMemorySignals(t *Table) {
	cat := taxonomy.CategoryMemory
	t.AddKeyword(cat, "outofmemory", 0.8)
	t.AddKeyword(cat, "out of memory", 0.8)
	t.AddKeyword(cat, "oom killed", 0.8)
	t.AddKeyword(cat, "allocation failed", 0.7)
	t.AddKeyword(cat, "cannot allocate", 0.7)
	t.AddKeyword(cat, "memory", 0.5)
	t.AddKeyword(cat, "heap", 0.5)
	t.AddContextSignal(cat, ContextSignal{Key: "memoryPressure", Weight: 0.8, Values: []string{"high", "critical"}})
}

func registerStorageSignals(t *Table) {
	cat := taxonomy.CategoryStorage
	t.AddKeyword(cat, "no space left", 0.8)
	t.AddKeyword(cat, "disk full", 0.8)
	t.AddKeyword(cat, "read-only file system", 0.7)
	t.AddKeyword(cat, "database is locked", 0.7)
	t.AddKeyword(cat, "i/o error", 0.7)
	t.AddKeyword(cat, "file not found", 0.6)
	t.AddKeyword(cat, "no such file", 0.6)
	t.AddKeyword(cat, "failed to write", 0.6)
	t.AddKeyword(cat, "sqlite", 0.5)
	t.AddKeyword(cat, "storage", 0.5)
	t.AddContextSignal(cat, ContextSignal{Key: "diskFull", Weight: 0.9, Bool: boolPtr(true)})
}

func registerTimeoutSignals(t *Table) {
	cat := taxonomy.CategoryTimeout
	t.AddKeyword(cat, "deadline exceeded", 0.8)
	t.AddKeyword(cat, "timed out", 0.7)
	t.AddKeyword(cat, "timeout", 0.7)
	t.AddKeyword(cat, "took too long", 0.6)
}

func registerPermissionSignals(t *Table) {
	cat := taxonomy.CategoryPermission
	t.AddKeyword(cat, "permission denied", 0.8)
	t.AddKeyword(cat, "access denied", 0.8)
	t.AddKeyword(cat, "operation not permitted", 0.7)
	t.AddKeyword(cat, "forbidden", 0.7)
	t.AddKeyword(cat, "eacces", 0.6)
	t.AddKeyword(cat, "403", 0.6)
}

func registerRateLimitSignals(t *Table) {
	cat := taxonomy.CategoryRateLimit
	t.AddKeyword(cat, "rate limit", 0.8)
	t.AddKeyword(cat, "too many requests", 0.8)
	t.AddKeyword(cat, "quota exceeded", 0.7)
	t.AddKeyword(cat, "429", 0.7)
	t.AddKeyword(cat, "throttl", 0.6)
	t.AddContextSignal(cat, ContextSignal{Key: "retryAfter", Weight: 0.9, AtLeast: floatPtr(0)})
}

func registerSecuritySignals(t *Table) {
	cat := taxonomy.CategorySecurity
	t.AddKeyword(cat, "certificate verify failed", 0.8)
	t.AddKeyword(cat, "signature verification", 0.8)
	t.AddKeyword(cat, "integrity check", 0.8)
	t.AddKeyword(cat, "certificate", 0.7)
	t.AddKeyword(cat, "tamper", 0.7)
	t.AddKeyword(cat, "handshake", 0.6)
	t.AddKeyword(cat, "untrusted", 0.6)
	t.AddKeyword(cat, "security", 0.6)
	t.AddKeyword(cat, "ssl", 0.5)
	t.AddKeyword(cat, "tls", 0.5)
}

func registerUISignals(t *Table) {
	cat := taxonomy.CategoryUI
	t.AddKeyword(cat, "layout", 0.6)
	t.AddKeyword(cat, "widget", 0.6)
	t.AddKeyword(cat, "view not found", 0.6)
	t.AddKeyword(cat, "render", 0.5)
}

func registerDataCorruptionSignals(t *Table) {
	cat := taxonomy.CategoryDataCorruption
	t.AddKeyword(cat, "corrupt", 0.8)
	t.AddKeyword(cat, "unexpected end of", 0.7)
	t.AddKeyword(cat, "checksum", 0.7)
	t.AddKeyword(cat, "bad magic", 0.7)
	t.AddKeyword(cat, "failed to decode", 0.6)
	t.AddKeyword(cat, "invalid utf-8", 0.6)
	t.AddKeyword(cat, "malformed", 0.5)
}
