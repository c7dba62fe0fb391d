package util

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var qjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Writes the JSON representation of obj to w, tab indented
func WriteJSON(w io.Writer, obj any) error {
	encoder := qjson.NewEncoder(w)
	encoder.SetIndent("", "\t")
	return encoder.Encode(obj)
}

// Reads the JSON representation of an object from r into obj
func ReadJSON(r io.Reader, obj any) error {
	return qjson.NewDecoder(r).Decode(obj)
}
