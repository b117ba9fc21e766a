package signal

import "math"

// Direction is the morning price-proxy signal, separate from the news
// sentiment Signal since it drives a different (long/short) decision.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
	DirectionFlat  Direction = "FLAT"
)

// ClassifyReturns combines two overnight proxy returns into a direction.
// The weighted raw score must clear the threshold in magnitude to trade.
func ClassifyReturns(asiaRet, usRet, asiaWeight, usWeight, threshold float64) (Direction, float64) {
	raw := asiaWeight*asiaRet + usWeight*usRet
	if math.Abs(raw) < threshold {
		return DirectionFlat, raw
	}
	if raw > 0 {
		return DirectionLong, raw
	}
	return DirectionShort, raw
}
