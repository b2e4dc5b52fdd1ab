package model

// FilterState is the dashboard's cross-filter tuple. Empty strings mean
// "unset" for Date, Country and Category.
type FilterState struct {
	Field    TextField `json:"field"`
	Date     string    `json:"date,omitempty"`
	Country  string    `json:"country,omitempty"`
	Category string    `json:"category,omitempty"`
}

// StateChangeDiff flags which members of the tuple an update changed.
type StateChangeDiff struct {
	Field    bool `json:"field"`
	Date     bool `json:"date"`
	Country  bool `json:"country"`
	Category bool `json:"category"`
}

// Any reports whether at least one member changed.
func (d StateChangeDiff) Any() bool {
	return d.Field || d.Date || d.Country || d.Category
}

// StateUpdateRequest is the body of POST /api/state.
type StateUpdateRequest struct {
	Field    string `json:"field"`
	Date     string `json:"date"`
	Country  string `json:"country"`
	Category string `json:"category"`
}

// FieldUpdateRequest is the body of POST /api/state/field.
type FieldUpdateRequest struct {
	Field string `json:"field"`
}

// Labels are the UI texts derived from the state.
type Labels struct {
	Layer       string    `json:"layer"`
	Date        string    `json:"date"`
	ActiveField TextField `json:"activeField"`
}

// StateResponse is the API response for state reads and writes.
type StateResponse struct {
	State     FilterState      `json:"state"`
	Diff      *StateChangeDiff `json:"diff,omitempty"`
	Refreshed []string         `json:"refreshed,omitempty"`
	Labels    Labels           `json:"labels"`
}

// Snapshot is every rendered view at one point in time.
type Snapshot struct {
	State     FilterState   `json:"state"`
	Labels    Labels        `json:"labels"`
	Hierarchy HierarchyView `json:"hierarchy"`
	Bubbles   BubbleView    `json:"bubbles"`
}
