//go:build !stdjson

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal proxies to sonic using the encoding/json compatible config.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal proxies to sonic using the encoding/json compatible config.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

func NewDecoder(r io.Reader) Decoder { return api.NewDecoder(r) }

func NewEncoder(w io.Writer) Encoder { return api.NewEncoder(w) }
