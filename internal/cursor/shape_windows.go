//go:build windows
// +build windows

package cursor

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// user32 standard cursor resource ids, see MAKEINTRESOURCE(IDC_*).
const (
	idcArrow       = 32512
	idcIBeam       = 32513
	idcWait        = 32514
	idcCross       = 32515
	idcUpArrow     = 32516
	idcSize        = 32640
	idcSizeNWSE    = 32642
	idcSizeNESW    = 32643
	idcSizeWE      = 32644
	idcSizeNS      = 32645
	idcSizeAll     = 32646
	idcNo          = 32648
	idcHand        = 32649
	idcAppStarting = 32650
	idcHelp        = 32651
	idcPin         = 32671
	idcPerson      = 32672
)

const cursorShowing = 0x00000001

type cursorInfo struct {
	Size      uint32
	Flags     uint32
	Cursor    windows.Handle
	ScreenPos struct{ X, Y int32 }
}

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	procGetCursorInfo = user32.NewProc("GetCursorInfo")
	procLoadCursorW   = user32.NewProc("LoadCursorW")
)

// WindowsResolver maps cursor handles to glyph names by comparing against
// the standard cursor table loaded at construction time. The table is owned
// by the resolver instance, not process-global state.
type WindowsResolver struct {
	names map[windows.Handle]string
}

// NewResolver loads the standard cursor handles once and returns a resolver
// bound to that table.
func NewResolver() *WindowsResolver {
	standard := []struct {
		id   uintptr
		name string
	}{
		{idcArrow, "arrow"},
		{idcIBeam, "ibeam"},
		{idcWait, "wait"},
		{idcCross, "cross"},
		{idcUpArrow, "up_arrow"},
		{idcSize, "size"},
		{idcSizeNWSE, "size_nw_se"},
		{idcSizeNESW, "size_ne_sw"},
		{idcSizeWE, "size_we"},
		{idcSizeNS, "size_ns"},
		{idcSizeAll, "size_all"},
		{idcNo, "no"},
		{idcHand, "hand"},
		{idcAppStarting, "app_starting"},
		{idcHelp, "help"},
		{idcPin, "pin"},
		{idcPerson, "person"},
	}

	names := make(map[windows.Handle]string, len(standard))
	for _, c := range standard {
		handle, _, _ := procLoadCursorW.Call(0, c.id)
		if handle != 0 {
			names[windows.Handle(handle)] = c.name
		}
	}
	return &WindowsResolver{names: names}
}

// Resolve queries the displayed cursor and returns its id and label. A
// failed GetCursorInfo call reports ShapeNone with the error sentinel label.
func (r *WindowsResolver) Resolve() (ShapeID, string) {
	var info cursorInfo
	info.Size = uint32(unsafe.Sizeof(info))
	info.Flags = cursorShowing

	ret, _, _ := procGetCursorInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return ShapeNone, ErrorShapeName
	}

	id := ShapeID(info.Cursor)
	if name, ok := r.names[info.Cursor]; ok {
		return id, name
	}
	return id, customShapeName(id)
}
