package echoapi

import "github.com/dccampos/secretaria/core/student"

type (
	RejectRequest struct {
		Justification string `json:"justification"`
	}

	ApprovalResponse struct {
		Student      student.Student `json:"student"`
		Notification string          `json:"notification"`
	}

	DashboardResponse struct {
		PendingApplications int  `json:"pending_applications"`
		Students            int  `json:"students"`
		TokenLive           bool `json:"token_live"`
	}
)
