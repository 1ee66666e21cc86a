package class

// Scope selects which method table a name belongs to.
type Scope int

const (
	// Instance methods are invoked on objects and receive the receiver first.
	Instance Scope = iota + 1
	// Type methods are invoked on the class itself.
	Type
)

// Valid reports whether s is Instance or Type.
func (s Scope) Valid() bool {
	return s == Instance || s == Type
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case Instance:
		return "instance"
	case Type:
		return "type"
	default:
		return "invalid"
	}
}
