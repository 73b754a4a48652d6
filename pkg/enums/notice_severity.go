package enums

// NoticeSeverity classifies a user-facing cart notice.
type NoticeSeverity string

const (
	NoticeSeveritySuccess NoticeSeverity = "success"
	NoticeSeverityWarning NoticeSeverity = "warning"
	NoticeSeverityError   NoticeSeverity = "error"
	NoticeSeverityInfo    NoticeSeverity = "info"
)

var validNoticeSeverities = []NoticeSeverity{
	NoticeSeveritySuccess,
	NoticeSeverityWarning,
	NoticeSeverityError,
	NoticeSeverityInfo,
}

// String implements fmt.Stringer.
func (s NoticeSeverity) String() string {
	return string(s)
}

// IsValid reports whether the value is a known NoticeSeverity.
func (s NoticeSeverity) IsValid() bool {
	for _, candidate := range validNoticeSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}
