package entity

// Format selects which rendering of a notification a destination receives.
type Format string

const (
	FormatRich  Format = "rich"
	FormatPlain Format = "plain"
)

// NotificationMessage is the destination-neutral rendering of one webhook
// event. The plain text is derived from the rich text by stripping markup,
// never generated independently. Immutable after construction.
type NotificationMessage struct {
	RichText  string
	PlainText string
}

// NewNotificationMessage builds a message from its rich representation.
func NewNotificationMessage(rich string) *NotificationMessage {
	return &NotificationMessage{
		RichText:  rich,
		PlainText: StripTags(rich),
	}
}

// TextFor returns the rendering matching the given format.
func (m *NotificationMessage) TextFor(f Format) string {
	if f == FormatPlain {
		return m.PlainText
	}
	return m.RichText
}
