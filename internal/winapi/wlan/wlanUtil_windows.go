package wlan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var wlanapi = windows.NewLazySystemDLL("wlanapi.dll")
var (
	procWlanOpenHandle     = wlanapi.NewProc("WlanOpenHandle")
	procWlanCloseHandle    = wlanapi.NewProc("WlanCloseHandle")
	procWlanEnumInterfaces = wlanapi.NewProc("WlanEnumInterfaces")
	procWlanQueryInterface = wlanapi.NewProc("WlanQueryInterface")
	procWlanFreeMemory     = wlanapi.NewProc("WlanFreeMemory")
)

// Handle is an open session with the WLAN AutoConfig service.
type Handle struct {
	handle uintptr
}

// Open negotiates a wlanapi session.
func Open() (*Handle, error) {
	if err := wlanapi.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	wh := &Handle{}
	var negotiatedVersion uint32
	ret, _, _ := procWlanOpenHandle.Call(uintptr(wlanAPIVersion), 0, uintptr(unsafe.Pointer(&negotiatedVersion)), uintptr(unsafe.Pointer(&wh.handle)))
	if ret != 0 {
		return nil, fmt.Errorf("WlanOpenHandle: %w", windows.Errno(ret))
	}
	return wh, nil
}

// Current reports the connection of the first connected interface.
func (wh *Handle) Current() (Connection, error) {
	var list *wlanInterfaceInfoList
	ret, _, _ := procWlanEnumInterfaces.Call(wh.handle, 0, uintptr(unsafe.Pointer(&list)))
	if ret != 0 || list == nil {
		return Connection{}, fmt.Errorf("WlanEnumInterfaces: %w", windows.Errno(ret))
	}
	defer procWlanFreeMemory.Call(uintptr(unsafe.Pointer(list)))

	count := list.NumberOfItems
	if count == 0 {
		return Connection{}, ErrNoInterface
	}
	interfaces := (*[1 << 10]wlanInterface)(unsafe.Pointer(&list.InterfaceInfo[0]))[:count:count]
	for i := range interfaces {
		if interfaces[i].IsState != wlanInterfaceStateConnected {
			continue
		}
		return wh.query(&interfaces[i])
	}
	return Connection{Interface: windows.UTF16ToString(interfaces[0].InterfaceDescription[:])}, nil
}

func (wh *Handle) query(iface *wlanInterface) (Connection, error) {
	conn := Connection{Interface: windows.UTF16ToString(iface.InterfaceDescription[:])}

	var dataSize uint32
	var attr *wlanConnectionAttributes
	ret, _, _ := procWlanQueryInterface.Call(
		wh.handle,
		uintptr(unsafe.Pointer(&iface.InterfaceGuid)),
		uintptr(wlanIFOpcodeCurrentConnection),
		0,
		uintptr(unsafe.Pointer(&dataSize)),
		uintptr(unsafe.Pointer(&attr)),
		0,
	)
	if ret != 0 || attr == nil {
		return conn, fmt.Errorf("WlanQueryInterface: %w", windows.Errno(ret))
	}
	defer procWlanFreeMemory.Call(uintptr(unsafe.Pointer(attr)))

	if attr.IsState == wlanInterfaceStateConnected {
		conn.Connected = true
		conn.SSID = attr.WlanAssociationAttributes.Dot11Ssid.String()
		conn.Profile = windows.UTF16ToString(attr.StrProfileName[:])
		conn.SignalQuality = int(attr.WlanAssociationAttributes.WlanSignalQuality)
	}
	return conn, nil
}

func (wh *Handle) Close() error {
	if wh.handle == 0 {
		return nil
	}
	ret, _, _ := procWlanCloseHandle.Call(wh.handle, 0)
	wh.handle = 0
	if ret != 0 {
		return fmt.Errorf("WlanCloseHandle: %w", windows.Errno(ret))
	}
	return nil
}
