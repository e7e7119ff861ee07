// Package errors provides the classified error type used across codeblocks.
//
// Every failure the tool reports falls in one of a few categories:
//
//   - CategoryConfig: the preprocessor configuration is invalid. Fatal, the
//     run aborts before any chapter is touched.
//   - CategoryFormat: a chapter could not be reassembled. Recovered per
//     chapter; the chapter is left as it was.
//   - CategoryHost: the mdBook host sent input we cannot read, or we could
//     not write the result back.
//
// Invalid color overrides are reported as SeverityWarning errors and are
// only ever logged.
//
// Example usage:
//
//	err := errors.ConfigError("unexpected configuration key").
//		WithContext("key", key).
//		WithContext("expected", accepted).
//		Build()
package errors
