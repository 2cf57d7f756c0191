package pipeline

import "fmt"

// InvalidStateError reports a pipeline precondition violation: a
// channel reaching ProcessChannel with required selectors missing. (An
// entry reaching ProcessEntry with no URL is recorded as StatusError on
// the entry, not returned as this error.) These never originate from
// network or parse failures
// (those are download.Error / extract.ParseError) — they mean the
// scheduler handed the pipeline something it should never have
// produced.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid pipeline state: %s", e.Message)
}
