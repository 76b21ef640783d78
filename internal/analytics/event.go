package analytics

import "time"

const (
	// TopicLinkCreated carries LinkCreatedEvent messages.
	TopicLinkCreated = "link.created"
	// TopicLinkResolved carries LinkResolvedEvent messages.
	TopicLinkResolved = "link.resolved"
)

// LinkCreatedEvent is emitted when a long URL is assigned a code.
type LinkCreatedEvent struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	LongURL      string    `json:"longUrl"`
	Deduplicated bool      `json:"deduplicated"`
	ClientAddr   string    `json:"clientAddr"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LinkResolvedEvent is emitted when a code successfully resolves.
type LinkResolvedEvent struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	ClientAddr string    `json:"clientAddr"`
	Referrer   string    `json:"referrer,omitempty"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
