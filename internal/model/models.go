// Package model defines the entities served by the job-board backend and the
// response envelope wrapping every backend payload.
package model

// Level values mirror the job level enum in the backend.
const (
	LevelInternship = "INTERNSHIP"
	LevelFresher    = "FRESHER"
	LevelJunior     = "JUNIOR"
	LevelMiddle     = "MIDDLE"
	LevelSenior     = "SENIOR"
)

// Levels lists every known job level in display order.
var Levels = []string{LevelInternship, LevelFresher, LevelJunior, LevelMiddle, LevelSenior}

// Skill is a skill reference attached to jobs. Names are not guaranteed
// unique across jobs.
type Skill struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	CreateAt string `json:"createAt,omitempty"`
	UpdateAt string `json:"updateAt,omitempty"`
}

// Company is a company record. The listing serves companies paginated but
// applies no filtering to them.
type Company struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Logo        string `json:"logo,omitempty"`
	CreateAt    string `json:"createAt,omitempty"`
	UpdateAt    string `json:"updateAt,omitempty"`
}

// Job is a job posting as served by the backend. Salary is in VND.
// Level may be empty when the posting does not declare one; a missing level
// or zero salary simply fails any active constraint in that category.
//
// StaterDate mirrors the backend's JSON key as-is.
type Job struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location,omitempty"`
	Salary      float64  `json:"salary"`
	Quantity    int      `json:"quantity"`
	Level       string   `json:"level,omitempty"`
	Description string   `json:"description,omitempty"`
	StaterDate  string   `json:"staterDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Active      bool     `json:"active"`
	CreateAt    string   `json:"createAt,omitempty"`
	UpdateAt    string   `json:"updateAt,omitempty"`
	Company     *Company `json:"company,omitempty"`
	Skills      []Skill  `json:"skills"`
}

// Meta is the pagination block inside every collection payload.
type Meta struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Pages    int `json:"pages"`
	Total    int `json:"total"`
}

// Page wraps a slice of results with its pagination meta.
type Page[T any] struct {
	Meta   Meta `json:"meta"`
	Result []T  `json:"result"`
}

// Envelope is the fixed wrapper around every backend response body.
// Error is a string or null; Data is null on errors.
type Envelope[T any] struct {
	StatusCode int     `json:"statusCode"`
	Error      *string `json:"error"`
	Message    string  `json:"message"`
	Data       *T      `json:"data"`
}
