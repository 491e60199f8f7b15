package llm

// Result holds the outcome of one completion: either Text or Err is set.
type Result struct {
	Text string
	Err  *Error
}

func (r Result) OK() bool { return r.Err == nil }

// Resolve folds a Client's return values into a Result.
func Resolve(text string, err error) Result {
	if err != nil {
		return Result{Err: AsError(err)}
	}
	return Result{Text: text}
}
