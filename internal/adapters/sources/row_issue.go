package sources

// RowIssue reports a source row that was skipped during parsing, with
// enough context to find it in the upstream payload.
type RowIssue struct {
	Index  int
	Reason string
}
