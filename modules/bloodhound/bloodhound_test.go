package bloodhound

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocalGroupRIDs(t *testing.T) {
	if got := Administrators.RID(); got != "544" {
		t.Errorf("Administrators RID = %q, want 544", got)
	}
	if got := RemoteDesktopUsers.RID(); got != "555" {
		t.Errorf("Remote Desktop Users RID = %q, want 555", got)
	}
}

func TestNewLocalGroup(t *testing.T) {
	got := NewLocalGroup(RemoteDesktopUsers, "ws01.corp.local", "S-1-5-21-7", []string{"S-1-5-21-9", "S-1-5-21-8"})
	want := LocalGroup{
		ObjectIdentifier: "S-1-5-21-7-555",
		Name:             "REMOTE DESKTOP USERS@WS01.CORP.LOCAL",
		Results: []GroupMember{
			{ObjectIdentifier: "S-1-5-21-9", ObjectType: "User"},
			{ObjectIdentifier: "S-1-5-21-8", ObjectType: "User"},
		},
		LocalNames: []string{},
		Collected:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewLocalGroup mismatch (-want +got):\n%s", diff)
	}
}

func TestNewComputer(t *testing.T) {
	tests := []struct {
		name                             string
		sessions, admins, rdp            []string
		wantSessions, wantAdmin, wantRDP int
	}{
		{"no logon data", []string{}, []string{}, []string{}, 0, 0, 0},
		{"nil lists", nil, nil, nil, 0, 0, 0},
		{"sessions only", []string{"S-1-5-21-2", "S-1-5-21-3"}, nil, nil, 2, 0, 0},
		{"everything", []string{"S-1-5-21-2"}, []string{"S-1-5-21-4", "S-1-5-21-5"}, []string{"S-1-5-21-6"}, 1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComputer("srv1.corp.local", "S-1-5-21-1", "CORP.LOCAL", tt.sessions, tt.admins, tt.rdp)
			if c.Sessions.Results == nil {
				t.Fatal("session results are nil")
			}
			if len(c.Sessions.Results) != tt.wantSessions {
				t.Errorf("got %d sessions, want %d", len(c.Sessions.Results), tt.wantSessions)
			}
			if len(c.LocalGroups) != 2 {
				t.Fatalf("got %d local groups, want 2", len(c.LocalGroups))
			}
			if c.LocalGroups[0].ObjectIdentifier != "S-1-5-21-1-544" || c.LocalGroups[1].ObjectIdentifier != "S-1-5-21-1-555" {
				t.Errorf("local groups out of order: %v, %v", c.LocalGroups[0].ObjectIdentifier, c.LocalGroups[1].ObjectIdentifier)
			}
			if len(c.LocalGroups[0].Results) != tt.wantAdmin || len(c.LocalGroups[1].Results) != tt.wantRDP {
				t.Errorf("got %d admins and %d rdp users, want %d and %d",
					len(c.LocalGroups[0].Results), len(c.LocalGroups[1].Results), tt.wantAdmin, tt.wantRDP)
			}
			for _, session := range c.Sessions.Results {
				if session.ComputerSID != "S-1-5-21-1" {
					t.Errorf("session has computer SID %v", session.ComputerSID)
				}
			}
		})
	}
}

func TestComputersFileMarshal(t *testing.T) {
	cf := NewComputersFile([]Computer{
		NewComputer("srv1.corp.local", "S-1-5-21-1", "CORP.LOCAL", []string{"S-1-5-21-2", "S-1-5-21-3"}, []string{}, []string{}),
	})
	data, err := cf.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	want := `{"data":[{"Properties":{"domain":"CORP.LOCAL","name":"SRV1.CORP.LOCAL"},` +
		`"Sessions":{"Results":[{"UserSID":"S-1-5-21-2","ComputerSID":"S-1-5-21-1"},{"UserSID":"S-1-5-21-3","ComputerSID":"S-1-5-21-1"}],"Collected":true,"FailureReason":null},` +
		`"LocalGroups":[` +
		`{"ObjectIdentifier":"S-1-5-21-1-544","Name":"ADMINISTRATORS@SRV1.CORP.LOCAL","Results":[],"LocalNames":[],"Collected":true,"FailureReason":null},` +
		`{"ObjectIdentifier":"S-1-5-21-1-555","Name":"REMOTE DESKTOP USERS@SRV1.CORP.LOCAL","Results":[],"LocalNames":[],"Collected":true,"FailureReason":null}],` +
		`"ObjectIdentifier":"S-1-5-21-1"}],` +
		`"meta":{"methods":266,"type":"computers","count":1,"version":5}}` + "\n"

	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("encoded document mismatch (-want +got):\n%s", diff)
	}
}

func TestComputersFileEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewComputersFile(nil).Encode(&buf); err != nil {
		t.Fatal(err)
	}
	want := `{"data":[],"meta":{"methods":266,"type":"computers","count":0,"version":5}}` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestComputersFileEscaping(t *testing.T) {
	cf := NewComputersFile([]Computer{
		NewComputer("we\"ird\\host\n.corp", "S-1-5-21-1\"}", "CORP", []string{"S-1-5-21-\t2"}, nil, nil),
	})
	data, err := cf.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(data, []byte("\n")) != 1 || data[len(data)-1] != '\n' {
		t.Fatalf("document is not a single line: %q", data)
	}

	var decoded ComputersFile
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(cf, decoded); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}
