package entity

import "time"

// Programme status constants
const (
	ProgrammeStatusDraft     = "draft"
	ProgrammeStatusSubmitted = "submitted"
	ProgrammeStatusApproved  = "approved"
	ProgrammeStatusCompleted = "completed"
)

// Programme mode constants
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Coordinator identifies a programme coordinator
type Coordinator struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// IncomeItem is one registration-fee category in the tentative budget
type IncomeItem struct {
	Category             string  `json:"category"`
	ExpectedParticipants int     `json:"expectedParticipants"`
	PerParticipantAmount float64 `json:"perParticipantAmount"`
	GSTPercentage        float64 `json:"gstPercentage"`
}

// BudgetExpense is one planned expenditure row in the tentative budget
type BudgetExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetBreakdown is the tentative budget attached at programme creation
type BudgetBreakdown struct {
	Income             []IncomeItem    `json:"income"`
	Expenses           []BudgetExpense `json:"expenses"`
	UniversityOverhead float64         `json:"universityOverhead"`
	TotalExpenditure   float64         `json:"totalExpenditure"`
}

// Programme is a training programme or event administered through the
// portal. The ClaimBill is attached later, wholesale, when the coordinator
// submits expenses after the programme runs.
type Programme struct {
	ID       int64  `json:"id"`
	PublicID string `json:"publicId"`

	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Venue     string    `json:"venue"`
	Mode      string    `json:"mode"`
	Duration  string    `json:"duration"`
	Status    string    `json:"status"`

	Coordinators    []Coordinator `json:"coordinators"`
	TargetAudience  []string      `json:"targetAudience,omitempty"`
	ResourcePersons []string      `json:"resourcePersons,omitempty"`

	Budget BudgetBreakdown `json:"budgetBreakdown"`

	Claim *ClaimBill `json:"claimBill,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateRange formats the programme dates for documents, collapsing
// single-day programmes to one date.
func (p Programme) DateRange() string {
	const layout = "02.01.2006"
	if p.StartDate.Equal(p.EndDate) || p.EndDate.IsZero() {
		return p.StartDate.Format(layout)
	}
	return p.StartDate.Format(layout) + " to " + p.EndDate.Format(layout)
}

// CoordinatorNames joins coordinator names for narrative text
func (p Programme) CoordinatorNames() []string {
	names := make([]string, 0, len(p.Coordinators))
	for _, c := range p.Coordinators {
		names = append(names, c.Name)
	}
	return names
}
