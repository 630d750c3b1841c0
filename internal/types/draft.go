package types

// SafetyVerdict is the outcome of the safety/relevance gate.
type SafetyVerdict string

const (
	VerdictApprove SafetyVerdict = "APPROVE"
	VerdictReject  SafetyVerdict = "REJECT"
)

// ReplyClass classifies a detected reply body.
type ReplyClass string

const (
	ReplyHuman ReplyClass = "human"
	ReplyAuto  ReplyClass = "auto-reply"
	ReplyOther ReplyClass = "other"
)

// ResponseStatusFor maps a reply classification to the stored response status.
func ResponseStatusFor(class ReplyClass) ResponseStatus {
	switch class {
	case ReplyHuman:
		return ResponseHuman
	case ReplyAuto:
		return ResponseAuto
	case ReplyOther:
		return ResponseOther
	}
	return ResponseNone
}

// Draft is a generated email ready for the safety gate.
type Draft struct {
	Subject      string  `json:"subject"`
	Body         string  `json:"body"`
	TemplateUsed string  `json:"template_used"`
	ResumeChoice string  `json:"resume_choice"`
	QualityScore float64 `json:"quality_score"`
}

// OutboundMessage is what the mailer transports.
type OutboundMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}
