package grid

// Launchpad Mini / Launchpad S button layout (X-Y mode)
// Top row:    8 ctrl buttons, CC 0x68-0x6F
// Matrix:     8x8 pads, note = (y << 4) | x
// Right col:  8 page buttons, note = (y << 4) | 8
const (
	CtrlButtons  = 8
	PageButtons  = 8
	MatrixWidth  = 8
	MatrixHeight = 8

	// PageColumn is the x coordinate that addresses the page buttons
	PageColumn = 8

	firstCtrlCC = 0x68
)

// CtrlButtonID returns the CC number of the top button x
func CtrlButtonID(x int) uint8 {
	return uint8(firstCtrlCC + x)
}

// XForCtrlCC returns the ctrl button index for a CC number
func XForCtrlCC(cc uint8) int {
	return int(cc) - firstCtrlCC
}

// IsCtrlCC reports whether cc addresses one of the top buttons
func IsCtrlCC(cc uint8) bool {
	return cc >= firstCtrlCC && cc < firstCtrlCC+CtrlButtons
}

// MatrixButtonID returns the note number for a matrix button.
// Column 8 addresses the round page buttons on the right side.
func MatrixButtonID(x, y int) uint8 {
	return uint8(y<<4) | uint8(x&0x0F)
}

// PageButtonID returns the note number of page button y
func PageButtonID(y int) uint8 {
	return MatrixButtonID(PageColumn, y)
}

func XForMatrixNote(note uint8) int {
	return int(note & 0x0F)
}

func YForMatrixNote(note uint8) int {
	return int(note>>4) & 0x0F
}

// YForPageNote returns the page button index for a note number
func YForPageNote(note uint8) int {
	return YForMatrixNote(note)
}

// IsPageNote reports whether note addresses a page button
func IsPageNote(note uint8) bool {
	return XForMatrixNote(note) == PageColumn && YForMatrixNote(note) < PageButtons
}

// IsMatrixNote reports whether note addresses a pad inside the 8x8 matrix
func IsMatrixNote(note uint8) bool {
	return XForMatrixNote(note) < MatrixWidth && YForMatrixNote(note) < MatrixHeight
}

// ValidCtrl reports whether x is a valid ctrl button index
func ValidCtrl(x int) bool {
	return x >= 0 && x < CtrlButtons
}

// ValidPage reports whether y is a valid page button index
func ValidPage(y int) bool {
	return y >= 0 && y < PageButtons
}
