package ctrf

// Status is a normalized test outcome.
type Status string

// The fixed CTRF outcome vocabulary.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusPending Status = "pending"
	StatusOther   Status = "other"
)

// Native states reported by a host runner. These are the actions emitted by
// test2json; "todo" is accepted for runners that distinguish planned tests.
const (
	NativePass = "pass"
	NativeFail = "fail"
	NativeSkip = "skip"
	NativeTodo = "todo"
)

// MapStatus converts a native state into a Status. Unknown states map to
// StatusOther.
func MapStatus(native string) Status {
	switch native {
	case NativePass:
		return StatusPassed
	case NativeFail:
		return StatusFailed
	case NativeSkip:
		return StatusSkipped
	case NativeTodo:
		return StatusPending
	default:
		return StatusOther
	}
}
