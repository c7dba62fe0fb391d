package tables

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/icza/gox/stringsx"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/pkg/errors"
)

// Columns names the headers used in the four input tables
type Columns struct {
	Host     string
	SID      string
	Sessions string
	Admins   string
	RDP      string
}

func DefaultColumns() Columns {
	return Columns{
		Host:     "DNSHostName",
		SID:      "SID",
		Sessions: "Sessions",
		Admins:   "Admins",
		RDP:      "RDP",
	}
}

// DuplicatePolicy decides what happens when the identity index has the same host with different SIDs
type DuplicatePolicy int

const (
	DuplicateError DuplicatePolicy = iota
	DuplicateFirst
	DuplicateLast
)

var duplicatePolicyNames = []string{"error", "first", "last"}

func (d DuplicatePolicy) String() string {
	if d < 0 || int(d) >= len(duplicatePolicyNames) {
		return fmt.Sprintf("DuplicatePolicy(%d)", d)
	}
	return duplicatePolicyNames[d]
}

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	for i, name := range duplicatePolicyNames {
		if strings.EqualFold(name, s) {
			return DuplicatePolicy(i), nil
		}
	}
	return DuplicateError, fmt.Errorf("unknown duplicate policy %q, use one of %v", s, strings.Join(duplicatePolicyNames, ", "))
}

// MergedRow is one host after all joins. The list cells hold raw whitespace separated SIDs,
// blank when the host was missing from that source.
type MergedRow struct {
	Host     string
	SID      string
	Sessions string
	Admins   string
	RDP      string
}

type Merger struct {
	Columns    Columns
	Duplicates DuplicatePolicy
}

func NewMerger() Merger {
	return Merger{Columns: DefaultColumns()}
}

// Merge outer joins the session, admin and rdp tables on host name, then inner joins the result
// with the identity index. Hosts without a SID are dropped. Rows come out ordered by host name.
func (m Merger) Merge(sessions, admins, rdp, identities *Table) ([]MergedRow, error) {
	sessioncells, err := m.listCells(sessions, m.Columns.Sessions)
	if err != nil {
		return nil, err
	}
	admincells, err := m.listCells(admins, m.Columns.Admins)
	if err != nil {
		return nil, err
	}
	rdpcells, err := m.listCells(rdp, m.Columns.RDP)
	if err != nil {
		return nil, err
	}
	sids, err := m.IdentityIndex(identities)
	if err != nil {
		return nil, err
	}

	hosts := make(map[string]struct{}, len(sessioncells))
	for _, cells := range []map[string]string{sessioncells, admincells, rdpcells} {
		for host := range cells {
			hosts[host] = struct{}{}
		}
	}

	result := make([]MergedRow, 0, len(hosts))
	var unresolved int
	for _, host := range slices.Sorted(maps.Keys(hosts)) {
		sid, found := sids[host]
		if !found {
			ui.Debug().Msgf("Host %v has logon data but no SID, skipping it", printable(host))
			unresolved++
			continue
		}
		result = append(result, MergedRow{
			Host:     host,
			SID:      sid,
			Sessions: sessioncells[host],
			Admins:   admincells[host],
			RDP:      rdpcells[host],
		})
	}

	ui.Info().Msgf("Merged logon data for %v hosts, %v resolved to a SID and %v without one", len(hosts), len(result), unresolved)
	return result, nil
}

// listCells indexes a logon table by host. Repeated hosts get their SID lists concatenated in file order.
func (m Merger) listCells(t *Table, listcolumn string) (map[string]string, error) {
	cols, err := t.Columns(m.Columns.Host, listcolumn)
	if err != nil {
		return nil, err
	}
	hostcol, listcol := cols[0], cols[1]

	cells := make(map[string]string, t.Len())
	for i, row := range t.Rows {
		host := row.Cell(hostcol)
		if host == "" {
			ui.Warn().Msgf("Row %v in %v has no host name, ignoring it", i+1, t.Name)
			continue
		}
		cell := row.Cell(listcol)
		if existing, found := cells[host]; found {
			ui.Warn().Msgf("Host %v is listed more than once in %v, combining the SID lists", printable(host), t.Name)
			cell = existing + " " + cell
		}
		cells[host] = cell
	}
	return cells, nil
}

// IdentityIndex maps host name to SID. Rows with a blank SID count as absent.
func (m Merger) IdentityIndex(t *Table) (map[string]string, error) {
	cols, err := t.Columns(m.Columns.Host, m.Columns.SID)
	if err != nil {
		return nil, err
	}
	hostcol, sidcol := cols[0], cols[1]

	index := make(map[string]string, t.Len())
	for i, row := range t.Rows {
		host, sid := row.Cell(hostcol), row.Cell(sidcol)
		if host == "" {
			ui.Warn().Msgf("Row %v in %v has no host name, ignoring it", i+1, t.Name)
			continue
		}
		if sid == "" {
			ui.Warn().Msgf("Host %v has a blank SID in %v, it will be excluded", printable(host), t.Name)
			continue
		}
		existing, found := index[host]
		if !found {
			index[host] = sid
			continue
		}
		if existing == sid {
			ui.Debug().Msgf("Host %v is listed twice in %v with the same SID", printable(host), t.Name)
			continue
		}
		switch m.Duplicates {
		case DuplicateFirst:
			ui.Warn().Msgf("Host %v has SIDs %v and %v in %v, keeping the first one", printable(host), printable(existing), printable(sid), t.Name)
		case DuplicateLast:
			ui.Warn().Msgf("Host %v has SIDs %v and %v in %v, keeping the last one", printable(host), printable(existing), printable(sid), t.Name)
			index[host] = sid
		default:
			return nil, errors.Wrapf(ErrDuplicateHost, "%v lists host %q with SIDs %q and %q (choose a duplicate policy to resolve this)", t.Name, host, existing, sid)
		}
	}
	return index, nil
}

// printable strips control characters from input data before it goes to the console
func printable(s string) string {
	return stringsx.Clean(s)
}
