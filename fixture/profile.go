package fixture

const (
	TypeIntensity  = "type:intensity"
	TypeColorRed   = "type:color:red"
	TypeColorGreen = "type:color:green"
	TypeColorBlue  = "type:color:blue"
)

// Profile holds info for a fixture profile including the channel mappings.
type Profile struct {
	Name string

	// The fixture channels, keyed by offset from the fixture's start address
	Channels map[int]string
}

// DefaultProfile is a 4 channel RGB PAR: intensity followed by red, green and blue.
func DefaultProfile() Profile {
	return Profile{
		Name: "Generic RGB PAR (4 channel)",
		Channels: map[int]string{
			0: TypeIntensity,
			1: TypeColorRed,
			2: TypeColorGreen,
			3: TypeColorBlue,
		},
	}
}

// ChannelCount returns the number of channels the profile occupies.
func (p Profile) ChannelCount() int {
	n := 0
	for offset := range p.Channels {
		if offset+1 > n {
			n = offset + 1
		}
	}
	return n
}
