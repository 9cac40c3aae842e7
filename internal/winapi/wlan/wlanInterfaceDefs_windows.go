package wlan

import "golang.org/x/sys/windows"

const (
	wlanAPIVersion                uint32 = 2
	wlanIFOpcodeCurrentConnection uint32 = 7
	wlanInterfaceStateConnected   uint32 = 1
)

type wlanInterface struct {
	InterfaceGuid        windows.GUID
	InterfaceDescription [256]uint16
	IsState              uint32
}

type wlanInterfaceInfoList struct {
	NumberOfItems uint32
	Index         uint32
	InterfaceInfo [1]wlanInterface
}

type dot11SSID struct {
	ElementLength uint32
	UCSSID        [32]byte // 最长 32 字节
}

func (ssid dot11SSID) String() string {
	n := ssid.ElementLength
	if n > uint32(len(ssid.UCSSID)) {
		n = uint32(len(ssid.UCSSID))
	}
	return string(ssid.UCSSID[:n])
}

type wlanAssociationAttributes struct {
	Dot11Ssid         dot11SSID
	Dot11BssType      uint32
	Dot11Bssid        [6]byte
	Dot11PhyType      uint32
	UPhyIndex         uint32
	WlanSignalQuality uint32 // 0-100
	UlRxRate          uint32
	UlTxRate          uint32
}

type wlanConnectionAttributes struct {
	IsState                   uint32
	WlanConnectionMode        uint32
	StrProfileName            [256]uint16
	WlanAssociationAttributes wlanAssociationAttributes
	WlanSecurityAttributes    [100]byte // 只取前面的字段
}
