package models

// OpenSessionRequest carries the password entered at the gate.
type OpenSessionRequest struct {
	Password string `json:"password" binding:"required"`
}

// DietRowRequest adds or edits one diet row.
type DietRowRequest struct {
	Feed string   `json:"feed"`
	Kg   *float64 `json:"kg" binding:"required,gte=0"`
}

// EvaluationPayload is the HTTP form of an evaluation request. When Rows is
// omitted the session's diet is used.
type EvaluationPayload struct {
	Weight      float64        `json:"weight" binding:"required,gt=0"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory" binding:"required"`
	Notes       string         `json:"notes"`
	Rows        *DietSelection `json:"rows"`
}
