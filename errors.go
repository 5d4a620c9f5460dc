package thread

type baseErr struct {
	msg string
}

func (e *baseErr) Error() string {
	return e.msg
}

// SpawnErr is returned by a constructor that could not start a goroutine.
type SpawnErr struct {
	baseErr
}

// NewSpawnErr return a SpawnErr with msg
func NewSpawnErr(msg string) *SpawnErr {
	return &SpawnErr{baseErr{msg}}
}

// IllegalStateErr is returned when an operation is not valid for the
// current state of a Thread, e.g. joining one that is not joinable.
type IllegalStateErr struct {
	baseErr
}

// NewIllegalStateErr return a IllegalStateErr with msg
func NewIllegalStateErr(msg string) *IllegalStateErr {
	return &IllegalStateErr{baseErr{msg}}
}
