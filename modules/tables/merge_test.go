package tables

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func logonTable(name, column string, rows ...[2]string) *Table {
	t := NewTable(name, "DNSHostName", column)
	for _, row := range rows {
		t.Add(row[0], row[1])
	}
	return t
}

func identityTable(rows ...[2]string) *Table {
	return logonTable("computerSids.csv", "SID", rows...)
}

func TestMergeOuterThenInner(t *testing.T) {
	sessions := logonTable("sessions.csv", "Sessions",
		[2]string{"b.corp.local", "S-1-5-21-10 S-1-5-21-11"},
		[2]string{"nosid.corp.local", "S-1-5-21-12"},
	)
	admins := logonTable("admins.csv", "Admins",
		[2]string{"a.corp.local", "S-1-5-21-20"},
	)
	rdp := logonTable("rdp.csv", "RDP",
		[2]string{"b.corp.local", "S-1-5-21-30"},
		[2]string{"c.corp.local", ""},
	)
	identities := identityTable(
		[2]string{"c.corp.local", "S-1-5-21-3"},
		[2]string{"a.corp.local", "S-1-5-21-1"},
		[2]string{"b.corp.local", "S-1-5-21-2"},
		[2]string{"idle.corp.local", "S-1-5-21-4"},
	)

	rows, err := NewMerger().Merge(sessions, admins, rdp, identities)
	require.NoError(t, err)
	require.Equal(t, []MergedRow{
		{Host: "a.corp.local", SID: "S-1-5-21-1", Admins: "S-1-5-21-20"},
		{Host: "b.corp.local", SID: "S-1-5-21-2", Sessions: "S-1-5-21-10 S-1-5-21-11", RDP: "S-1-5-21-30"},
		{Host: "c.corp.local", SID: "S-1-5-21-3"},
	}, rows)
}

func TestMergeHostsWithoutSIDAreDropped(t *testing.T) {
	sessions := logonTable("sessions.csv", "Sessions", [2]string{"ghost", "S-1-5-21-1"})
	admins := logonTable("admins.csv", "Admins", [2]string{"ghost", "S-1-5-21-2"})
	rdp := logonTable("rdp.csv", "RDP", [2]string{"ghost", "S-1-5-21-3"})
	identities := identityTable([2]string{"other", "S-1-5-21-4"}, [2]string{"blank", ""})

	rows, err := NewMerger().Merge(sessions, admins, rdp, identities)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMergeMissingColumnIsFatal(t *testing.T) {
	good := logonTable("sessions.csv", "Sessions")
	bad := NewTable("admins.csv", "Host", "Admins")
	identities := identityTable()

	_, err := NewMerger().Merge(good, bad, logonTable("rdp.csv", "RDP"), identities)
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = NewMerger().Merge(good, logonTable("admins.csv", "Admins"), logonTable("rdp.csv", "RDP"), NewTable("computerSids.csv", "DNSHostName"))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestMergeCustomColumns(t *testing.T) {
	m := NewMerger()
	m.Columns = Columns{Host: "host", SID: "sid", Sessions: "s", Admins: "a", RDP: "r"}

	sessions := NewTable("sessions.csv", "host", "s")
	sessions.Add("srv1", "S-1-5-21-2")
	identities := NewTable("computerSids.csv", "sid", "host")
	identities.Add("S-1-5-21-1", "srv1")

	rows, err := m.Merge(sessions, NewTable("admins.csv", "host", "a"), NewTable("rdp.csv", "host", "r"), identities)
	require.NoError(t, err)
	require.Equal(t, []MergedRow{{Host: "srv1", SID: "S-1-5-21-1", Sessions: "S-1-5-21-2"}}, rows)
}

func TestMergeRepeatedLogonHostConcatenates(t *testing.T) {
	sessions := logonTable("sessions.csv", "Sessions",
		[2]string{"srv1", "S-1-5-21-2"},
		[2]string{"srv1", "S-1-5-21-3 S-1-5-21-4"},
	)
	identities := identityTable([2]string{"srv1", "S-1-5-21-1"})

	rows, err := NewMerger().Merge(sessions, logonTable("admins.csv", "Admins"), logonTable("rdp.csv", "RDP"), identities)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"S-1-5-21-2", "S-1-5-21-3", "S-1-5-21-4"}, SplitSIDs(rows[0].Sessions))
}

func TestIdentityIndexDuplicates(t *testing.T) {
	identities := identityTable(
		[2]string{"srv1", "S-1-5-21-1"},
		[2]string{"srv1", "S-1-5-21-1"},
		[2]string{"srv2", "S-1-5-21-2"},
		[2]string{"srv2", "S-1-5-21-9"},
	)

	m := NewMerger()
	_, err := m.IdentityIndex(identities)
	require.ErrorIs(t, err, ErrDuplicateHost)
	require.Contains(t, err.Error(), "srv2")

	m.Duplicates = DuplicateFirst
	index, err := m.IdentityIndex(identities)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"srv1": "S-1-5-21-1", "srv2": "S-1-5-21-2"}, index)

	m.Duplicates = DuplicateLast
	index, err = m.IdentityIndex(identities)
	require.NoError(t, err)
	require.Equal(t, "S-1-5-21-9", index["srv2"])
}

func TestParseDuplicatePolicy(t *testing.T) {
	for _, name := range []string{"error", "first", "LAST"} {
		policy, err := ParseDuplicatePolicy(name)
		require.NoError(t, err)
		require.Equal(t, name, map[DuplicatePolicy]string{DuplicateError: "error", DuplicateFirst: "first", DuplicateLast: "LAST"}[policy])
	}
	_, err := ParseDuplicatePolicy("random")
	require.Error(t, err)
}
