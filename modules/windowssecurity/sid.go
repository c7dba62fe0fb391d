package windowssecurity

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"

	gsync "github.com/SaveTheRbtz/generic-sync-map-go"
)

var ErrorOnlySIDVersion1Supported = errors.New("only SID version 1 supported")

// SID in compact binary form
//
// 0-5 = authority
// 6-9+ = chunks of 4 with little endian subauthorities
type SID string

var sidDeduplicator gsync.MapOf[SID, SID]

func ParseStringSID(input string) (SID, error) {
	if len(input) < 5 {
		return "", errors.New("SID string is too short to be a SID")
	}
	subauthoritycount := strings.Count(input, "-") - 2
	if subauthoritycount < 0 {
		return "", errors.New("less than one subauthority found")
	}
	if subauthoritycount > 15 {
		return "", errors.New("SID subauthority count is more than 15")
	}
	if input[0] != 'S' {
		return "", errors.New("SID must start with S")
	}
	var sid = make([]byte, 6+4*subauthoritycount)

	strnums := strings.Split(input, "-")

	version, err := strconv.ParseUint(strnums[1], 10, 8)
	if err != nil {
		return "", err
	}
	if version != 1 {
		return "", ErrorOnlySIDVersion1Supported
	}

	authority, err := strconv.ParseUint(strnums[2], 10, 48)
	if err != nil {
		return "", err
	}
	authslice := make([]byte, 8)
	binary.BigEndian.PutUint64(authslice, authority<<16)
	copy(sid[0:], authslice[0:6])

	for i := range subauthoritycount {
		subauthority, err := strconv.ParseUint(strnums[3+i], 10, 32)
		if err != nil {
			return "", err
		}
		binary.LittleEndian.PutUint32(sid[6+4*i:], uint32(subauthority))
	}

	// two step lookup to avoid unnecessary allocations
	if cached, found := sidDeduplicator.Load(SID(sid)); found {
		return cached, nil
	}
	lookup := SID(sid)
	cached, _ := sidDeduplicator.LoadOrStore(lookup, lookup)
	return cached, nil
}

func MustParseStringSID(input string) SID {
	sid, err := ParseStringSID(input)
	if err != nil {
		panic(err)
	}
	return sid
}

// RID returns the last subauthority, 0 if there is none
func (sid SID) RID() uint32 {
	if len(sid) < 10 {
		return 0
	}
	return binary.LittleEndian.Uint32([]byte(sid[len(sid)-4:]))
}
