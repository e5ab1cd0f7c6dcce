package remote

import (
	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/remote/wire"
	"SignalDeck/pkg/util"
)

// SignalFromRecord normalizes one tagged record and maps it onto the
// uniform Signal shape. Missing attributes default to zero values so no
// partial record ever reaches the rendering boundary: reasons and
// technical data are always non-nil.
func SignalFromRecord(rec wire.Record) models.Signal {
	attrs := wire.Normalize(rec)

	s := models.Signal{
		Symbol:     stringAttr(attrs, "symbol"),
		SignalType: stringAttr(attrs, "signal_type"),
		Confidence: numberAttr(attrs, "confidence"),
		Price:      numberAttr(attrs, "price"),
		Reasons:    []string{},
		Technical:  models.TechnicalData{},
	}

	if ts, ok := attrs["timestamp"].(string); ok {
		s.Timestamp, _ = util.ParseTime(ts)
	}

	if reasons, ok := attrs["reasons"].([]interface{}); ok {
		for _, r := range reasons {
			switch v := r.(type) {
			case string:
				s.Reasons = append(s.Reasons, v)
			case float64:
				s.Reasons = append(s.Reasons, util.FormatFloat(v))
			}
		}
	}

	if tech, ok := attrs["technical_data"].(map[string]interface{}); ok {
		for name, v := range tech {
			if f, ok := v.(float64); ok {
				s.Technical[name] = f
			}
		}
	}

	return s
}

func stringAttr(attrs map[string]interface{}, key string) string {
	v, _ := attrs[key].(string)
	return v
}

func numberAttr(attrs map[string]interface{}, key string) float64 {
	v, _ := attrs[key].(float64)
	return v
}
