package subscriber

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// maxPayloadBytes は登録リクエストボディの読み込み上限。
const maxPayloadBytes = 64 << 10

// Payload は登録リクエストをゆるく解釈した結果。
// 値の正規化・バリデーションはService.Subscribeで行う。
type Payload struct {
	Email     string   // 文字列に変換済みのemail（未正規化）
	Interests []string // 配列でなかった場合はnil
	Zip       *string  // 偽値（null、空文字列、0、false、未指定）の場合はnil
}

// DecodePayload はリクエストボディを読み取りPayloadに変換する。
// JSONとして解釈できない、またはオブジェクトでないボディは空のPayloadとして扱う。
// その場合もエラーにはせず、後段のバリデーションで弾かれる。
func DecodePayload(r io.Reader) Payload {
	body, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes))
	if err != nil {
		return Payload{}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Payload{}
	}

	p := Payload{
		Email:     coerceString(raw["email"]),
		Interests: coerceStringSlice(raw["interests"]),
	}
	if zip := coerceString(raw["zip"]); zip != "" {
		p.Zip = &zip
	}
	return p
}

// coerceString は任意のJSON値を文字列に変換する。
// null、false、0、空文字列、未指定は空文字列になる。
// 配列とオブジェクトはブラウザのString()と同じ規則で変換する（jsString）。
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	default:
		return jsString(val)
	}
}

// jsString は配列を要素のカンマ区切りに、オブジェクトを"[object Object]"にする。
// 配列の要素のnullは空文字列、falseは"false"になる。
func jsString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = jsString(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// coerceStringSlice はJSON配列の各要素を文字列に変換する。
// 配列でない場合はnilを返す。
func coerceStringSlice(raw json.RawMessage) []string {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil || elems == nil {
		return nil
	}

	result := make([]string, len(elems))
	for i, e := range elems {
		result[i] = coerceString(e)
	}
	return result
}
