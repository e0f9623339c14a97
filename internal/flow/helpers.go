package flow

import "github.com/agrimitra/agrimitra/internal/schema"

// requiredText is a string property that must be present and non-empty.
func requiredText(description, message string) *schema.Schema {
	return schema.String(description).NonEmpty().Msg(message).MissingMsg(message)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
