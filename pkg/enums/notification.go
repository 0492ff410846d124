package enums

import "fmt"

// NotificationKind labels the email events published to the notification topic.
type NotificationKind string

const (
	NotificationKindWelcome       NotificationKind = "welcome"
	NotificationKindLoginOTP      NotificationKind = "login_otp"
	NotificationKindOrderPlaced   NotificationKind = "order_placed"
	NotificationKindStatusChanged NotificationKind = "status_changed"
)

var validNotificationKinds = []NotificationKind{
	NotificationKindWelcome,
	NotificationKindLoginOTP,
	NotificationKindOrderPlaced,
	NotificationKindStatusChanged,
}

// String implements fmt.Stringer.
func (n NotificationKind) String() string {
	return string(n)
}

// IsValid checks whether the given kind matches the canonical enum.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationKind converts raw strings into NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}
