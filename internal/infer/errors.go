package infer

// InferenceError reports that no candidate dialect produced a positive
// pattern score.
type InferenceError struct {
	Reason string
}

func (e *InferenceError) Error() string {
	return "dialect inference failed: " + e.Reason
}
