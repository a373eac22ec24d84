package logkey

// Shared structured-log field names so log queries stay consistent
// across handlers and services.
const (
	TraceID   = "trace_id"
	Error     = "error"
	OrderID   = "order_id"
	ProductID = "product_id"
	UserID    = "user_id"
	EventType = "event_type"
)
