package netsh

const showProfilesOutput = "\r\n" +
	"Profiles on interface Wi-Fi:\r\n" +
	"\r\n" +
	"Group policy profiles (read only)\r\n" +
	"---------------------------------\r\n" +
	"    <None>\r\n" +
	"\r\n" +
	"User profiles\r\n" +
	"-------------\r\n" +
	"    All User Profile     : HomeNet\r\n" +
	"    All User Profile     : Cafe Guest\r\n" +
	"    All User Profile     : \r\n" +
	"    User Profile         : Office:5G\r\n" +
	"\r\n"

const showProfileClearOutput = `
Profile HomeNet on interface Wi-Fi:
=======================================================================

Applied: All User Profile

Profile information
-------------------
    Version                : 1
    Type                   : Wireless LAN
    Name                   : HomeNet
    Control options        :
        Connection mode    : Connect automatically
        Network broadcast  : Connect only if this network is broadcasting

Connectivity settings
---------------------
    Number of SSIDs        : 1
    SSID name              : "HomeNet"
    Radio type             : [ Any Radio Type ]

Security settings
-----------------
    Authentication         : WPA2-Personal
    Cipher                 : CCMP
    Security key           : Present
    Key Content            : correct: horse battery

Cost settings
-------------
    Cost                   : Unrestricted
`

const showOpenProfileOutput = `
Profile Cafe Guest on interface Wi-Fi:
=======================================================================

Security settings
-----------------
    Security key           : Absent
`
