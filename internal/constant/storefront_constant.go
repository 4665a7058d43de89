package constant

const (
	// Internal bus topic carrying completed selections to the lead
	// pipeline.
	TopicLeadCreated = "LEAD_CREATED"

	// External NATS event code.
	EventLeadCreated = "LEAD_CREATED"

	// Choose/selection outcome statuses returned to the transport
	// adapter.
	SelectionInProgress = "in_progress"
	SelectionComplete   = "complete"
	SelectionNotFound   = "not_found"
	SelectionNoOptions  = "no_options"
)
