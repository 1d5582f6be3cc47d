package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOwnerID    = "owner_id"
	FieldUsername   = "username"
	FieldRecordKind = "record_kind"
	FieldRecordID   = "record_id"
	FieldDate       = "date"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentStorage   = "storage"
	ComponentDashboard = "dashboard"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentJournal   = "journal"
)

// Record kinds as they appear in logs and queue messages
const (
	KindMeditation = "meditation"
	KindReading    = "reading"
	KindReflection = "reflection"
	KindPlan       = "plan"
)
