package input

import (
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Errors
var (
	ErrNoDevice     = errors.New("input: no matching device")
	ErrNotSupported = errors.New("input: not supported")
)

// DevicePattern matches the evdev nodes probed by FindKeyboard and FindJoystick.
var DevicePattern = "/dev/input/event*"

const (
	keyBytes = KeyMax/8 + 1
	absBytes = AbsMax/8 + 1
)

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func testBit(bits []byte, n int) bool {
	if n < 0 || n/8 >= len(bits) {
		return false
	}
	return bits[n/8]&(1<<uint(n%8)) != 0
}

// normalizeAxis maps v in [min, max] onto [-1, 1]; the limits map exactly to -1 and 1.
func normalizeAxis(v, min, max int32) float32 {
	switch {
	case max <= min:
		return 0
	case v <= min:
		return -1
	case v >= max:
		return 1
	}
	return float32(2*(int64(v)-int64(min)))/float32(int64(max)-int64(min)) - 1
}

// axisCode returns the absolute axis code for an axis of a stick.
func axisCode(stick, axis int) (uint16, bool) {
	if axis != 0 && axis != 1 {
		return 0, false
	}
	switch stick {
	case 0:
		return uint16(AbsX + axis), true
	case 1:
		return uint16(AbsRX + axis), true
	case 2:
		return uint16(AbsHat0X + axis), true
	default:
		return 0, false
	}
}

// supportedButtons lists the key codes at or above BtnMisc set in a capability bitmap, in
// code order. Joystick button numbers index this list.
func supportedButtons(keyCaps []byte) []uint16 {
	var buttons []uint16
	for code := BtnMisc; code <= KeyMax; code++ {
		if testBit(keyCaps, code) {
			buttons = append(buttons, uint16(code))
		}
	}
	return buttons
}

func isKeyboard(keyCaps []byte) bool {
	for _, code := range DefaultKeyMap {
		if !testBit(keyCaps, int(code)) {
			return false
		}
	}
	return true
}

func isJoystick(keyCaps, absCaps []byte) bool {
	if !testBit(absCaps, AbsX) || !testBit(absCaps, AbsY) {
		return false
	}
	for code := BtnJoystick; code < BtnDigi; code++ {
		if testBit(keyCaps, code) {
			return true
		}
	}
	return false
}

// eventDevices returns the device nodes matching DevicePattern in numeric order.
func eventDevices() ([]string, error) {
	paths, err := filepath.Glob(DevicePattern)
	if err != nil {
		return nil, err
	}
	sortDevices(paths)
	return paths, nil
}

func sortDevices(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, oki := deviceNumber(paths[i])
		nj, okj := deviceNumber(paths[j])
		if oki && okj && ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
}

func deviceNumber(path string) (int, bool) {
	base := filepath.Base(path)
	digits := strings.TrimLeft(base, "abcdefghijklmnopqrstuvwxyz")
	n, err := strconv.Atoi(digits)
	return n, err == nil
}
