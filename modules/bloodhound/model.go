package bloodhound

// Field order matches SharpHound output

type ComputersFile struct {
	Data []Computer `json:"data"`
	Meta Meta       `json:"meta"`
}

type Meta struct {
	Methods int    `json:"methods"`
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Version int    `json:"version"`
}

type Computer struct {
	Properties       ComputerProperties `json:"Properties"`
	Sessions         SessionResults     `json:"Sessions"`
	LocalGroups      []LocalGroup       `json:"LocalGroups"`
	ObjectIdentifier string             `json:"ObjectIdentifier"`
}

type ComputerProperties struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

type SessionResults struct {
	Results       []Session `json:"Results"`
	Collected     bool      `json:"Collected"`
	FailureReason *string   `json:"FailureReason"`
}

type Session struct {
	UserSID     string `json:"UserSID"`
	ComputerSID string `json:"ComputerSID"`
}

type LocalGroup struct {
	ObjectIdentifier string        `json:"ObjectIdentifier"`
	Name             string        `json:"Name"`
	Results          []GroupMember `json:"Results"`
	LocalNames       []string      `json:"LocalNames"`
	Collected        bool          `json:"Collected"`
	FailureReason    *string       `json:"FailureReason"`
}

type GroupMember struct {
	ObjectIdentifier string `json:"ObjectIdentifier"`
	ObjectType       string `json:"ObjectType"`
}
