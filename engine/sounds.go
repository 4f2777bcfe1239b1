package engine

// Sounds receives gameplay cues; implementations must not block the loop
type Sounds interface {
	Eat()
	SpeedUp()
	Crash()
	Win()
}

type silentSounds struct{}

func (silentSounds) Eat()     {}
func (silentSounds) SpeedUp() {}
func (silentSounds) Crash()   {}
func (silentSounds) Win()     {}
