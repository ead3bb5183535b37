package messages

// Series carries points for one subscribed expression. Pos is the index of
// the expression in the subscription request. For folded expressions the
// timestamps are phase offsets re-anchored at the transit epoch.
type Series struct {
	Pos        int       `json:"pos"`
	Timestamps []int64   `json:"timestamps"`
	Values     []float64 `json:"values"`
}

type Data struct {
	Series []Series `json:"series,omitempty"`
	Error  string   `json:"error,omitempty"`
	Now    uint64   `json:"now,omitempty"`
}
