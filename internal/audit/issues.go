package audit

import "fmt"

// issueKind is the stable category prefix a recoverable per-sample error
// carries into the report's errors list.
type issueKind string

const (
	issueSampleLoad issueKind = "sample load"
	issueHash       issueKind = "hash compute"
	issueProbe      issueKind = "metadata probe"
	issueContainer  issueKind = "container mismatch"
)

// issue records one recoverable extraction failure. The affected sample
// stays in the audit with whatever fields were extracted before the failure.
type issue struct {
	kind   issueKind
	split  string
	sample string
	detail string
}

func (i issue) String() string {
	return fmt.Sprintf("%s: %s/%s: %s", i.kind, i.split, i.sample, i.detail)
}
