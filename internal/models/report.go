package models

// ImportReport summarizes one roster import
type ImportReport struct {
	ImportedCount int      `json:"importedCount"`
	ImportedTeams []string `json:"importedTeams"`
	Errors        []string `json:"errors"`
}

// NewImportReport returns an empty report with non-nil slices so it
// always serializes as arrays.
func NewImportReport() *ImportReport {
	return &ImportReport{ImportedTeams: []string{}, Errors: []string{}}
}

// TrackCount is one bucket of the teams-per-track histogram
type TrackCount struct {
	Track string `json:"_id" db:"track"`
	Count int    `json:"count" db:"count"`
}

// DashboardStats aggregates counts for the dashboards
type DashboardStats struct {
	TotalParticipants  int          `json:"totalParticipants"`
	TotalTeams         int          `json:"totalTeams"`
	SubmittedProjects  int          `json:"submittedProjects"`
	ScoredTeams        int          `json:"scoredTeams"`
	CertificatesIssued int          `json:"certificatesIssued"`
	TeamsPerTrack      []TrackCount `json:"teamsPerTrack"`
	JudgingStatus      string       `json:"judgingStatus"`
}
