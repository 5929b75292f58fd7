package astro

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Sign is one of the twelve tropical zodiac signs, in ecliptic order.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of signs on the ecliptic.
const SignCount = 12

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the English sign name.
func (s Sign) String() string {
	if s < 0 || int(s) >= SignCount {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// MarshalJSON encodes the sign as its name.
func (s Sign) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sign: %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a sign from its name.
func (s *Sign) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("sign must be a string: %w", err)
	}
	parsed, err := ParseSign(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSign looks up a sign by name, case-insensitively.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sign: %q", name)
}

// DegreeToSign splits an ecliptic longitude into its sign and the degree within that sign.
// The in-sign degree is in [0, 30).
func DegreeToSign(longitude float64) (Sign, float64) {
	n := NormalizeDegrees(longitude)
	idx := int(math.Floor(n / 30))
	if idx >= SignCount {
		idx = SignCount - 1
	}
	return Sign(idx), n - float64(idx)*30
}

// Element of a sign.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

// Modality of a sign.
type Modality string

const (
	Cardinal Modality = "Cardinal"
	Fixed    Modality = "Fixed"
	Mutable  Modality = "Mutable"
)

// SignInfo describes the classical attributes of a sign.
type SignInfo struct {
	Sign     Sign     `json:"sign"`
	Start    float64  `json:"start_longitude"`
	Element  Element  `json:"element"`
	Modality Modality `json:"modality"`
	Ruler    string   `json:"ruler"`
}

var signRulers = [SignCount]string{
	"Mars", "Venus", "Mercury", "Moon",
	"Sun", "Mercury", "Venus", "Pluto",
	"Jupiter", "Saturn", "Uranus", "Neptune",
}

// Info returns the element, modality and ruler of the sign.
// Elements cycle Fire, Earth, Air, Water; modalities cycle Cardinal, Fixed, Mutable.
func (s Sign) Info() SignInfo {
	elements := [4]Element{Fire, Earth, Air, Water}
	modalities := [3]Modality{Cardinal, Fixed, Mutable}
	return SignInfo{
		Sign:     s,
		Start:    float64(s) * 30,
		Element:  elements[int(s)%4],
		Modality: modalities[int(s)%3],
		Ruler:    signRulers[s],
	}
}

// AllSigns returns the attribute table for every sign in ecliptic order.
func AllSigns() []SignInfo {
	out := make([]SignInfo, 0, SignCount)
	for i := 0; i < SignCount; i++ {
		out = append(out, Sign(i).Info())
	}
	return out
}
