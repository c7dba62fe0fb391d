package bloodhound

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

func NewComputersFile(computers []Computer) ComputersFile {
	if computers == nil {
		computers = []Computer{}
	}
	return ComputersFile{
		Data: computers,
		Meta: Meta{
			Methods: Methods,
			Type:    TypeComputers,
			Count:   len(computers),
			Version: Version,
		},
	}
}

// Marshal renders the file as a single line of JSON terminated by a newline
func (cf ComputersFile) Marshal() ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(cf)
	if err != nil {
		return nil, errors.Wrap(err, "encoding computers file")
	}
	return append(data, '\n'), nil
}

func (cf ComputersFile) Encode(w io.Writer) error {
	data, err := cf.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
