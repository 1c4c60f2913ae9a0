package model

const (
	NumberTypeCellular = "CELLULAR"
	NumberTypeHome     = "HOME"
	NumberTypeWorker   = "WORKER"
	NumberTypeNone     = "NONE"
)

// Contact is an entry in a user's address book. A contact belongs to exactly
// one owner and carries the full list of its phone numbers.
type Contact struct {
	ID        int           `json:"-"`
	UserID    int           `json:"-"`
	Name      string        `json:"name"`
	ImageName *string       `json:"imageName,omitempty"`
	Numbers   []PhoneNumber `json:"numbers"`
}

// PhoneNumber belongs to exactly one contact. It has no independent
// lifecycle: numbers are created and destroyed with their parent contact and
// fully replaced on contact update.
type PhoneNumber struct {
	ID         int    `json:"-"`
	ContactID  int    `json:"-"`
	Number     string `json:"number"`
	NumberType string `json:"numberType"`
}

// ContactRequest is the body of POST /contact and PUT /contact/:id
type ContactRequest struct {
	Name      string               `json:"name" binding:"required,min=2,max=100"`
	ImageName *string              `json:"imageName"`
	Numbers   []PhoneNumberRequest `json:"numbers" binding:"omitempty,dive"`
}

type PhoneNumberRequest struct {
	Number     string `json:"number" binding:"required,min=11,max=20"`
	NumberType string `json:"numberType" binding:"omitempty,oneof=CELLULAR HOME WORKER NONE"`
}

// ToContact converts the request body into a Contact. An empty numberType
// defaults to NONE.
func (r *ContactRequest) ToContact() *Contact {
	numbers := make([]PhoneNumber, 0, len(r.Numbers))
	for _, n := range r.Numbers {
		numberType := n.NumberType
		if numberType == "" {
			numberType = NumberTypeNone
		}
		numbers = append(numbers, PhoneNumber{
			Number:     n.Number,
			NumberType: numberType,
		})
	}

	return &Contact{
		Name:      r.Name,
		ImageName: r.ImageName,
		Numbers:   numbers,
	}
}
