package bloodhound

import (
	"github.com/lkarlslund/logonhound/modules/util"
)

func NewSession(computerSid, userSid string) Session {
	return Session{
		UserSID:     userSid,
		ComputerSID: computerSid,
	}
}

func NewGroupMember(userSid string) GroupMember {
	return GroupMember{
		ObjectIdentifier: userSid,
		ObjectType:       ObjectTypeUser,
	}
}

// NewLocalGroup describes group on one host, members keep the order they were given in
func NewLocalGroup(group LocalGroupDefinition, hostName, hostSid string, memberSids []string) LocalGroup {
	results := make([]GroupMember, 0, len(memberSids))
	for _, sid := range memberSids {
		results = append(results, NewGroupMember(sid))
	}
	return LocalGroup{
		ObjectIdentifier: hostSid + "-" + group.RID(),
		Name:             util.Upper(group.Name) + "@" + util.Upper(hostName),
		Results:          results,
		LocalNames:       []string{},
		Collected:        true,
	}
}

func NewComputer(hostName, hostSid, domain string, sessionSids, adminSids, rdpSids []string) Computer {
	sessions := make([]Session, 0, len(sessionSids))
	for _, sid := range sessionSids {
		sessions = append(sessions, NewSession(hostSid, sid))
	}

	members := [][]string{adminSids, rdpSids}
	localgroups := make([]LocalGroup, len(LocalGroups))
	for i, group := range LocalGroups {
		localgroups[i] = NewLocalGroup(group, hostName, hostSid, members[i])
	}

	return Computer{
		Properties: ComputerProperties{
			Domain: domain,
			Name:   util.Upper(hostName),
		},
		Sessions: SessionResults{
			Results:   sessions,
			Collected: true,
		},
		LocalGroups:      localgroups,
		ObjectIdentifier: hostSid,
	}
}
