// Where: cli/internal/buildargs/testing_test.go
// What: Shared fakes for resolver tests.
// Why: Capture warnings without a console.
package buildargs

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(msg string) {
	l.warnings = append(l.warnings, msg)
}

func strPtr(value string) *string {
	return &value
}
