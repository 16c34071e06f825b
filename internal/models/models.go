// Package models defines the domain entities for the claims intake bot.
package models

// Step identifies which field of an in-progress form the bot is
// currently collecting for a user. Exactly one step is active at a
// time; the flows are linear chains branching out of StepIdle.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingDepartment
	StepAwaitingName
	StepAwaitingCategory
	StepAwaitingAmount
	StepAwaitingDescription
	StepAwaitingReceiptImage
	StepAwaitingPaymentProofName
	StepAwaitingPaymentProofImage
	StepAwaitingClaimIDLookup
)

// String returns a stable name for logging.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepAwaitingDepartment:
		return "awaiting_department"
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingCategory:
		return "awaiting_category"
	case StepAwaitingAmount:
		return "awaiting_amount"
	case StepAwaitingDescription:
		return "awaiting_description"
	case StepAwaitingReceiptImage:
		return "awaiting_receipt_image"
	case StepAwaitingPaymentProofName:
		return "awaiting_payment_proof_name"
	case StepAwaitingPaymentProofImage:
		return "awaiting_payment_proof_image"
	case StepAwaitingClaimIDLookup:
		return "awaiting_claim_id_lookup"
	}
	return "unknown"
}

// AwaitingImage reports whether the step expects a photo next.
func (s Step) AwaitingImage() bool {
	return s == StepAwaitingReceiptImage || s == StepAwaitingPaymentProofImage
}

// Field names an answer collected into a session draft.
type Field string

const (
	FieldDepartment  Field = "department"
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldReceiptID   Field = "receipt_id"
)

// Session tracks one user's progress through a form. Sessions are
// ephemeral: they live in memory for the duration of a conversation
// and are dropped on process restart.
type Session struct {
	ActiveStep Step
	Draft      map[Field]string
}

// NewSession returns an idle session with an empty draft.
func NewSession() *Session {
	return &Session{
		ActiveStep: StepIdle,
		Draft:      make(map[Field]string),
	}
}

// Submission statuses. Status is only ever written as Pending by this
// system; approvers mutate it externally in the sheet.
const (
	StatusPending  = "Pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// SubmissionFlag marks freshly appended rows for the finance team.
const SubmissionFlag = "Yes"

// Submission is one completed claim, appended as a single ledger row.
type Submission struct {
	ReceiptID   string
	Department  string
	Name        string
	Date        string
	Category    string
	Amount      string
	Description string
	Status      string
	Flag        string
}

// Row returns the ordered ledger row for this submission. The column
// order is fixed by the shared sheet: ID, department, name, date,
// category, amount, description, approval status, flag.
func (s Submission) Row() []any {
	return []any{
		s.ReceiptID,
		s.Department,
		s.Name,
		s.Date,
		s.Category,
		s.Amount,
		s.Description,
		s.Status,
		s.Flag,
	}
}

// DefaultDepartments is the closed set of departments a claim may be
// filed under when DEPARTMENTS is not configured.
var DefaultDepartments = []string{
	"Logistics",
	"Finance",
	"First Aid",
	"Blog",
	"Publicity",
	"Flights & Accoms",
}
