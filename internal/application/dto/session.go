package dto

import (
	"fmt"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// CreateSessionWithResultsRequest creates one MAP_SESSION together with
// its MAP_RESULT rows in a single ADAMO transaction.
type CreateSessionWithResultsRequest struct {
	Session CreateSessionRequest `json:"session"`
	Results []ResultItem         `json:"results"`
}

// CreateSessionRequest carries the session fields.
type CreateSessionRequest struct {
	Stage          string     `json:"stage,omitempty"`
	EvaluationDate *time.Time `json:"evaluationDate,omitempty"`
	Region         string     `json:"region,omitempty"`
	Segment        string     `json:"segment,omitempty"`
	Participants   string     `json:"participants,omitempty"`
	ShowInTaskList string     `json:"showInTaskList,omitempty"`
	SubStage       *int       `json:"subStage,omitempty"`
	Category       string     `json:"category,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
}

// ResultItem carries one result row; the session id is filled in from the
// created session.
type ResultItem struct {
	GrNumber          string `json:"grNumber"`
	Odor              string `json:"odor,omitempty"`
	BenchmarkComments string `json:"benchmarkComments,omitempty"`
	Result            *int   `json:"result,omitempty"`
	Dilution          string `json:"dilution,omitempty"`
	Sponsor           string `json:"sponsor,omitempty"`
}

// Validate rejects requests violating field constraints before any I/O.
func (r *CreateSessionWithResultsRequest) Validate() error {
	if len(r.Results) == 0 {
		return fmt.Errorf("at least one result is required")
	}
	if r.Session.Stage != "" && !valueobject.IsValidStage(r.Session.Stage) {
		return fmt.Errorf("invalid stage: %q", r.Session.Stage)
	}
	if r.Session.Segment != "" && !valueobject.IsValidSegment(r.Session.Segment) {
		return fmt.Errorf("invalid segment: %q", r.Session.Segment)
	}
	if r.Session.SubStage != nil && (*r.Session.SubStage < 0 || *r.Session.SubStage > 9) {
		return fmt.Errorf("subStage must be between 0 and 9")
	}
	for i, item := range r.Results {
		if !valueobject.IsValidGRNumber(item.GrNumber) {
			return fmt.Errorf("results[%d]: invalid GR number %q", i, item.GrNumber)
		}
		if item.Result != nil && (*item.Result < 1 || *item.Result > 5) {
			return fmt.Errorf("results[%d]: result must be between 1 and 5", i)
		}
	}
	return nil
}

// CreateSessionWithResultsResponse reports the transactional outcome.
type CreateSessionWithResultsResponse struct {
	Status         string `json:"status"`
	SessionID      int64  `json:"sessionId,omitempty"`
	ResultsCreated int    `json:"resultsCreated"`
	Message        string `json:"message"`
}
