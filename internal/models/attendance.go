package models

// Attendance is the committed number of children expected on each service day
type Attendance struct {
	Monday  int `json:"monday"`
	Tuesday int `json:"tuesday"`
}

// TotalChildren returns the combined attendance across both days
func (a Attendance) TotalChildren() int {
	return a.Monday + a.Tuesday
}

// AttendanceState is the draft/committed pair exposed to clients
type AttendanceState struct {
	Draft     Attendance `json:"draft"`
	Committed Attendance `json:"committed"`
	Sequence  uint64     `json:"sequence"`
}

// UpdateDraftRequest is the request body for editing draft attendance.
// Values are left untyped so that strings, numbers and nulls all reach intake.
type UpdateDraftRequest struct {
	Monday  interface{} `json:"monday"`
	Tuesday interface{} `json:"tuesday"`
}
