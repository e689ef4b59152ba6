package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "pending"
	StatusResolved ComplaintStatus = "resolved"
)

// Valid reports whether the status is one of the defined values.
func (s ComplaintStatus) Valid() bool {
	return s == StatusPending || s == StatusResolved
}

// Departments is the fixed set of academic departments a complaint may target.
var Departments = []string{
	"Computer Science Engineering (CSE)",
	"Electronics & Communication Engineering (ECE)",
	"Electrical & Electronics Engineering (EEE)",
	"Mechanical Engineering",
	"Civil Engineering",
	"Information Technology (IT)",
	"Chemical Engineering",
	"Biotechnology",
	"Aerospace Engineering",
	"Automobile Engineering",
}

// ValidDepartment reports whether name belongs to the department enumeration.
func ValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Complaint is the aggregate for submitted grievances.
type Complaint struct {
	ID          string
	StudentName string
	Department  string
	IssueTitle  string
	Description string
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewComplaint describes a submission payload. Status and timestamps are
// assigned by the store, never by the submitter.
type NewComplaint struct {
	StudentName string
	Department  string
	IssueTitle  string
	Description string
}

// Field length bounds for submissions.
const (
	MinStudentName = 2
	MaxStudentName = 100
	MinIssueTitle  = 5
	MaxIssueTitle  = 150
	MinDescription = 10
	MaxDescription = 1000
)

// Validate checks field constraints and returns per-field messages,
// or nil when the submission is acceptable.
func (n NewComplaint) Validate() map[string]string {
	problems := map[string]string{}

	switch l := utf8.RuneCountInString(n.StudentName); {
	case l < MinStudentName:
		problems["studentName"] = fmt.Sprintf("Name must be at least %d characters", MinStudentName)
	case l > MaxStudentName:
		problems["studentName"] = "Name is too long"
	}

	if !ValidDepartment(n.Department) {
		problems["department"] = "Please select a valid department"
	}

	switch l := utf8.RuneCountInString(n.IssueTitle); {
	case l < MinIssueTitle:
		problems["issueTitle"] = fmt.Sprintf("Issue title must be at least %d characters", MinIssueTitle)
	case l > MaxIssueTitle:
		problems["issueTitle"] = "Title is too long"
	}

	switch l := utf8.RuneCountInString(n.Description); {
	case l < MinDescription:
		problems["description"] = fmt.Sprintf("Description must be at least %d characters", MinDescription)
	case l > MaxDescription:
		problems["description"] = "Description is too long"
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

// FormatFieldErrors renders per-field messages as a single detail string
// with a stable field order.
func FormatFieldErrors(problems map[string]string) string {
	fields := make([]string, 0, len(problems))
	for field := range problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, problems[field]))
	}
	return strings.Join(parts, "; ")
}
