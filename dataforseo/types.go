package dataforseo

// ExploreResponse mirrors the Trends Explore Live response envelope
type ExploreResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []Task `json:"tasks"`
}

// Task is one task result in the envelope
type Task struct {
	StatusCode    int          `json:"status_code"`
	StatusMessage string       `json:"status_message"`
	Result        []TaskResult `json:"result"`
}

// TaskResult holds the item list for one task
type TaskResult struct {
	Keywords []string      `json:"keywords"`
	Items    []ExploreItem `json:"items"`
}

// ExploreItem is one dataset, usually a single interest-over-time graph
type ExploreItem struct {
	Type     string         `json:"type"`
	Keywords []string       `json:"keywords"`
	Data     []ExplorePoint `json:"data"`
}

// ExplorePoint is one time bucket; Values carries one entry per requested
// keyword, null when the API has no value for that bucket.
type ExplorePoint struct {
	DateFrom  string     `json:"date_from"`
	DateTo    string     `json:"date_to"`
	Timestamp int64      `json:"timestamp"`
	Values    []*float64 `json:"values"`
}

// FirstSeries returns the data points of the first available dataset, or nil
// when the response has none. Malformed or empty responses simply yield nil.
func (r *ExploreResponse) FirstSeries() []ExplorePoint {
	if r == nil || len(r.Tasks) == 0 {
		return nil
	}
	task := r.Tasks[0]
	if len(task.Result) == 0 {
		return nil
	}
	items := task.Result[0].Items
	if len(items) == 0 {
		return nil
	}
	return items[0].Data
}
