package bloodhound

import (
	"strconv"

	"github.com/lkarlslund/logonhound/modules/windowssecurity"
)

// Values BloodHound checks when importing a computers file
const (
	Methods       = 266
	Version       = 5
	TypeComputers = "computers"

	ObjectTypeUser = "User"
)

// LocalGroupDefinition is a builtin group reported for every computer
type LocalGroupDefinition struct {
	Name string
	SID  windowssecurity.SID
}

// RID is the group's relative identifier as used in the member group ObjectIdentifier
func (lgd LocalGroupDefinition) RID() string {
	return strconv.FormatUint(uint64(lgd.SID.RID()), 10)
}

var (
	Administrators     = LocalGroupDefinition{Name: "ADMINISTRATORS", SID: windowssecurity.AdministratorsSID}
	RemoteDesktopUsers = LocalGroupDefinition{Name: "REMOTE DESKTOP USERS", SID: windowssecurity.RemoteDesktopUsersSID}

	// Emitted in this order on every computer
	LocalGroups = []LocalGroupDefinition{Administrators, RemoteDesktopUsers}
)
