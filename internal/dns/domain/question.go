package domain

// Question is one entry of the question section.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question from an already-encoded name.
func NewQuestion(name Name, rrtype RRType, class RRClass) Question {
	return Question{
		Name:  name,
		Type:  rrtype,
		Class: class,
	}
}

// Matches reports whether q asks the same thing as other, comparing names
// case-insensitively.
func (q Question) Matches(other Question) bool {
	return q.Type == other.Type && q.Class == other.Class && q.Name.Equal(other.Name)
}

// String renders the question in zone-file order: "name class type".
func (q Question) String() string {
	return q.Name.String() + " " + q.Class.String() + " " + q.Type.String()
}
