package jsoncompat

// Decoder is the subset shared by encoding/json and sonic stream decoders.
type Decoder interface {
	Decode(v any) error
}

// Encoder is the subset shared by encoding/json and sonic stream encoders.
type Encoder interface {
	Encode(v any) error
}
