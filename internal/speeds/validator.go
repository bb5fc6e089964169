package speeds

// Validator guards every speed before it is handed to the fan controller.
type Validator struct {
	MinSpeed int
	MaxSpeed int
}

// NewValidator creates a Validator accepting [table.MinSpeed(), maxAllowedSpeed]
func NewValidator(table *SpeedTable, maxAllowedSpeed int) Validator {
	return Validator{
		MinSpeed: table.MinSpeed(),
		MaxSpeed: maxAllowedSpeed,
	}
}

func (v Validator) IsValid(speed int) bool {
	return v.MinSpeed <= speed && speed <= v.MaxSpeed
}

func (v Validator) Validate(speed int) error {
	if !v.IsValid(speed) {
		return &OutOfRangeError{Speed: speed, Min: v.MinSpeed, Max: v.MaxSpeed}
	}
	return nil
}

func (v Validator) ValidateHex(hex string) error {
	speed, err := Decode(hex)
	if err != nil {
		return err
	}
	return v.Validate(speed)
}
