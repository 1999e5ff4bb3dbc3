package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if b, ok := in.([]byte); ok {
		var v any
		if err = json.Unmarshal(b, &v); err != nil {
			return string(b)
		}
		in = v
	}

	buffer, err = json.MarshalIndent(in, "", "\t")
	if err != nil {
		return fmt.Sprintf("%v", in)
	}

	return string(buffer)
}
