package mail

// Config holds the SMTP settings. Built once in main from the environment and
// injected; there is no process-wide mail singleton.
type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	SenderName string
	SenderMail string
}

type Sender struct {
	cfg Config
}

// FollowUpData feeds the reminder templates. Fields mirror what the BD sees
// in the email body; empty strings render as N/A.
type FollowUpData struct {
	LeadID        string
	BDName        string
	ClientName    string
	ArchitectName string
	FirmName      string
	ClientMobile  string
}
