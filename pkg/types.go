package pkg

// SourceKind tags the provenance of a citation attached to an answer.
type SourceKind string

const (
	SourceReference SourceKind = "reference-document"
	SourceWeb       SourceKind = "web"
)

// Source is a single citation carried on a generated answer.  Sources
// accumulate within one turn only and reference-document sources always
// precede web sources.
type Source struct {
	Kind      SourceKind `json:"kind"`
	Reference string     `json:"reference"`
	Excerpt   string     `json:"excerpt"`
}

// LabResults holds the fixed set of named numeric values recorded on a
// discharge report.
type LabResults struct {
	CreatinineMgDl float64 `json:"creatinine_mg_dl"`
	EGFRMlMin      float64 `json:"egfr_ml_min"`
	PotassiumMeqL  float64 `json:"potassium_meq_l"`
	HemoglobinGDl  float64 `json:"hemoglobin_g_dl"`
}

// EmergencyContact is the person to call listed on the discharge report.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// PatientRecord is a fully parsed discharge report.  The store deserialises
// the JSON columns so callers never see raw serialized text.  A record is
// immutable once loaded for a turn.
type PatientRecord struct {
	ID                    int64            `json:"id"`
	Name                  string           `json:"patient_name"`
	DateOfBirth           string           `json:"date_of_birth"`
	AdmissionDate         string           `json:"admission_date"`
	DischargeDate         string           `json:"discharge_date"`
	PrimaryDiagnosis      string           `json:"primary_diagnosis"`
	SecondaryDiagnoses    []string         `json:"secondary_diagnoses"`
	Medications           []string         `json:"medications"`
	DietaryRestrictions   string           `json:"dietary_restrictions"`
	FollowUp              string           `json:"follow_up"`
	WarningSigns          string           `json:"warning_signs"`
	DischargeInstructions string           `json:"discharge_instructions"`
	LabResults            LabResults       `json:"lab_results"`
	ContactPhone          string           `json:"contact_phone"`
	EmergencyContact      EmergencyContact `json:"emergency_contact"`
}

// HistoryMessage is one prior conversation turn, oldest first.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload accepted by the chat endpoint.
type ChatRequest struct {
	PatientName         string           `json:"patient_name,omitempty"`
	Message             string           `json:"message"`
	SessionID           string           `json:"session_id"`
	ConversationHistory []HistoryMessage `json:"conversation_history"`
}

// ChatResponse is returned after one full turn through the orchestrator.
// Agent names the handler that produced the response text.
type ChatResponse struct {
	Response    string         `json:"response"`
	Agent       string         `json:"agent"`
	Sources     []Source       `json:"sources"`
	PatientData *PatientRecord `json:"patient_data,omitempty"`
}
