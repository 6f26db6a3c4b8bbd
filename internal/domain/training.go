package domain

// TrainingExample is one labeled (description, category) pair.
// Examples are immutable and consumed only during training.
type TrainingExample struct {
	Description string
	Category    string
}
