package draw

// DrawError is a draw engine error
type DrawError string

func (e DrawError) Error() string {
	return string(e)
}

const (
	// ErrInvalidCapacity is returned when the wheel has no numbers
	ErrInvalidCapacity DrawError = "capacity must be at least 1"

	// ErrNoFreeNumber is returned when every number on the wheel is taken
	ErrNoFreeNumber DrawError = "no free number left"

	// ErrInvalidSplit is returned for negative fractions or a split above the pool
	ErrInvalidSplit DrawError = "invalid prize split"
)
