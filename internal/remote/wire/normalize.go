package wire

import "strconv"

// Normalize converts a tagged record into a plain attribute map: string
// tags become strings, number tags parsed floats, list tags slices whose
// elements are resolved as string-or-number, and map tags recursively
// normalized sub-records. Attributes with unknown or malformed tags are
// omitted from the output; the wire schema is expected to evolve and
// lenient parsing is the deliberate policy.
func Normalize(rec Record) map[string]interface{} {
	out := make(map[string]interface{}, len(rec))
	for key, val := range rec {
		if plain, ok := resolve(val); ok {
			out[key] = plain
		}
	}
	return out
}

func resolve(v Value) (interface{}, bool) {
	switch {
	case v.S != nil:
		return *v.S, true
	case v.N != nil:
		f, err := strconv.ParseFloat(*v.N, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case v.L != nil:
		items := make([]interface{}, 0, len(v.L))
		for _, el := range v.L {
			// List elements resolve to scalars only; nested structures
			// inside lists are not part of the contract.
			if el.S != nil {
				items = append(items, *el.S)
				continue
			}
			if el.N != nil {
				if f, err := strconv.ParseFloat(*el.N, 64); err == nil {
					items = append(items, f)
				}
			}
		}
		return items, true
	case v.M != nil:
		return Normalize(v.M), true
	default:
		return nil, false
	}
}
