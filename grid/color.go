package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a Launchpad Mini LED code, sent as the note velocity or CC value.
// A code is the sum of one red term and one green term.
type Color uint8

const (
	LEDOff Color = 4

	Red1 Color = 5
	Red2 Color = 6
	Red3 Color = 7

	Green1 Color = 20
	Green2 Color = 36
	Green3 Color = 52

	Amber  = Red3 + Green3
	Yellow = Red1 + Green3
)

var (
	redTerms   = [4]Color{0, Red1, Red2, Red3}
	greenTerms = [4]Color{0, Green1, Green2, Green3}
)

// Mix returns the code for the given red and green levels (0-3 each)
func Mix(red, green int) Color {
	if red <= 0 && green <= 0 {
		return LEDOff
	}
	return redTerms[clampLevel(red)] + greenTerms[clampLevel(green)]
}

// Levels decodes c into red and green levels (0-3 each).
// Only used for on-screen previews; the device never sees the result.
func (c Color) Levels() (red, green int) {
	rest := c
	for level := 3; level > 0; level-- {
		if rest >= greenTerms[level] {
			green = level
			rest -= greenTerms[level]
			break
		}
	}
	for level := 3; level > 0; level-- {
		if rest == redTerms[level] {
			red = level
			break
		}
	}
	return red, green
}

func clampLevel(l int) int {
	if l < 0 {
		return 0
	}
	if l > 3 {
		return 3
	}
	return l
}

var colorNames = map[string]Color{
	"off":    LEDOff,
	"red1":   Red1,
	"red2":   Red2,
	"red3":   Red3,
	"green1": Green1,
	"green2": Green2,
	"green3": Green3,
	"amber":  Amber,
	"yellow": Yellow,
}

// ParseColor parses a colour name ("red3"), a sum of terms ("green3+red1")
// or a raw LED code ("53")
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("colour code %d out of range", n)
		}
		return Color(n), nil
	}
	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	red, green := 0, 0
	for _, term := range strings.Split(s, "+") {
		term = strings.TrimSpace(term)
		var level *int
		var digits string
		switch {
		case strings.HasPrefix(term, "red"):
			level, digits = &red, term[len("red"):]
		case strings.HasPrefix(term, "green"):
			level, digits = &green, term[len("green"):]
		default:
			return 0, fmt.Errorf("unknown colour %q", s)
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > 3 || *level != 0 {
			return 0, fmt.Errorf("unknown colour %q", s)
		}
		*level = n
	}
	return Mix(red, green), nil
}

func (c Color) String() string {
	if c == LEDOff {
		return "off"
	}
	red, green := c.Levels()
	if Mix(red, green) != c {
		return strconv.Itoa(int(c))
	}
	switch {
	case green == 0:
		return fmt.Sprintf("red%d", red)
	case red == 0:
		return fmt.Sprintf("green%d", green)
	}
	return fmt.Sprintf("green%d+red%d", green, red)
}
