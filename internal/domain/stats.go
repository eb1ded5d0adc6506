package domain

import (
	"math"
	"time"
)

type ApplicationCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
}

// Add counts status in its bucket. Unknown statuses are ignored so the buckets
// always sum to Total.
func (c *ApplicationCounts) Add(status ApplicationStatus) {
	if !status.Valid() {
		return
	}
	c.Total++
	switch status {
	case StatusPending:
		c.Pending++
	case StatusApproved:
		c.Approved++
	case StatusRejected:
		c.Rejected++
	case StatusCompleted:
		c.Completed++
	}
}

// ApprovalRate is the share of decided applications that were accepted, in percent.
func (c ApplicationCounts) ApprovalRate() float64 {
	decided := c.Approved + c.Rejected + c.Completed
	if decided == 0 {
		return 0
	}
	return math.Round(float64(c.Approved+c.Completed)/float64(decided)*10000) / 100
}

func CountApplications(apps []Application) ApplicationCounts {
	var c ApplicationCounts
	for _, app := range apps {
		c.Add(app.Status)
	}
	return c
}

// AverageResponseHours averages updatedAt - createdAt over applications that left PENDING.
func AverageResponseHours(apps []Application) float64 {
	var total time.Duration
	n := 0
	for _, app := range apps {
		if app.Status == StatusPending || !app.Status.Valid() {
			continue
		}
		total += app.UpdatedAt.Sub(app.CreatedAt)
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(total.Hours()/float64(n)*100) / 100
}

type ProgramStats struct {
	ProgramID    string            `json:"program_id"`
	Title        string            `json:"title"`
	IsOpen       bool              `json:"is_open"`
	Applications ApplicationCounts `json:"applications"`
}

type ArtisanDashboard struct {
	TotalPrograms        int               `json:"total_programs"`
	ActivePrograms       int               `json:"active_programs"`
	CompletedPrograms    int               `json:"completed_programs"`
	Applications         ApplicationCounts `json:"applications"`
	ApprovalRate         float64           `json:"approval_rate"`
	AverageResponseHours float64           `json:"average_response_hours"`
	Programs             []ProgramStats    `json:"programs"`
}

type ApplicantDashboard struct {
	Applications ApplicationCounts `json:"applications"`
	ApprovalRate float64           `json:"approval_rate"`
}
