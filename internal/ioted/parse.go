package ioted

import (
	"errors"

	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/tidwall/gjson"
)

// parseSummary converts the "data" array of a TED summary response into
// entries. Nested values are kept as raw JSON, null becomes empty.
func parseSummary(body []byte) ([]domain.Entry, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response is not valid JSON")
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, nil
	}
	if !data.IsArray() {
		return nil, errors.New(`"data" is not an array`)
	}

	var res []domain.Entry
	data.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		e := domain.Entry{Values: make(map[string]string)}
		item.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if _, ok := e.Values[key]; !ok {
				e.Keys = append(e.Keys, key)
			}
			e.Values[key] = v.String()
			return true
		})
		res = append(res, e)
		return true
	})
	return res, nil
}
