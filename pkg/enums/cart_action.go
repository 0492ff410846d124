package enums

import "fmt"

// CartAction is a quantity mutation applied to an existing cart item.
type CartAction string

const (
	CartActionIncrease CartAction = "increase"
	CartActionDecrease CartAction = "decrease"
	CartActionRemove   CartAction = "remove"
)

var validCartActions = []CartAction{
	CartActionIncrease,
	CartActionDecrease,
	CartActionRemove,
}

// String implements fmt.Stringer.
func (a CartAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known CartAction.
func (a CartAction) IsValid() bool {
	for _, candidate := range validCartActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseCartAction converts raw input into a CartAction.
func ParseCartAction(value string) (CartAction, error) {
	for _, candidate := range validCartActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart action %q", value)
}
