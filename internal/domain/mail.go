package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}

type ApplicationReceivedMailData struct {
	ApplicantName string `json:"applicantName"`
	PostingTitle  string `json:"postingTitle"`
	CompanyName   string `json:"companyName"`
}

type ApplicationStatusMailData struct {
	ApplicantName string            `json:"applicantName"`
	PostingTitle  string            `json:"postingTitle"`
	CompanyName   string            `json:"companyName"`
	Status        ApplicationStatus `json:"status"`
}

type PostingDecisionMailData struct {
	PostingTitle string        `json:"postingTitle"`
	Decision     PostingStatus `json:"decision"`
	Comments     string        `json:"comments"`
}
