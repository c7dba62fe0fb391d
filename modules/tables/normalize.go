package tables

import (
	"strings"

	"github.com/lkarlslund/logonhound/modules/util"
)

type NormalizedRow struct {
	HostName string // raw case, upper cased when the computer is built
	HostSID  string
	Domain   string
	Sessions []string
	Admins   []string
	RDP      []string
}

func Normalize(row MergedRow) NormalizedRow {
	return NormalizedRow{
		HostName: row.Host,
		HostSID:  row.SID,
		Domain:   DomainFromFQDN(row.Host),
		Sessions: SplitSIDs(row.Sessions),
		Admins:   SplitSIDs(row.Admins),
		RDP:      SplitSIDs(row.RDP),
	}
}

// DomainFromFQDN drops the leftmost label and upper cases the rest, "srv1.corp.local" gives "CORP.LOCAL"
func DomainFromFQDN(fqdn string) string {
	_, domain, found := strings.Cut(fqdn, ".")
	if !found {
		return ""
	}
	return util.Upper(domain)
}

// SplitSIDs tokenizes a whitespace separated cell, never returning nil
func SplitSIDs(cell string) []string {
	sids := strings.Fields(cell)
	if sids == nil {
		return []string{}
	}
	return sids
}
