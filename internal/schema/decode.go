package schema

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Decode copies a validated record into dst, a pointer to a payload struct
// whose fields carry mapstructure tags named after the JSON fields.
func Decode(rec Record, dst interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  dst,
		TagName: "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "build record decoder")
	}
	return errors.Wrap(dec.Decode(map[string]interface{}(rec)), "decode record")
}
