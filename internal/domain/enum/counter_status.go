package enum

// CounterStatus is the operating state of a point-of-sale register.
type CounterStatus string

const (
	CounterActive   CounterStatus = "active"
	CounterInactive CounterStatus = "inactive"
)

func (s CounterStatus) Valid() bool {
	return s == CounterActive || s == CounterInactive
}
