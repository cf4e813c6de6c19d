package logtrace

// TODO - wire route tracing to a config flag
func IsTraceEnabled() bool {
	return false
}
